package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// productService implements the ProductSvcFacade interface
type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product service
func NewProductService(repo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: repo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	now := time.Now()

	product := domain.Product{
		ProductID: uuid.NewString(),
		Name:      req.Name,
		Unit:      req.Unit,
		UnitPrice: req.UnitPrice,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product",
			slog.String("product_id", product.ProductID))
		return nil, err
	}

	s.LogInfo(ctx, "Product created successfully",
		slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product by ID",
				slog.String("product_id", productID))
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		product.Name = *req.Name
		updated = true
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
		updated = true
	}
	if req.UnitPrice != nil {
		product.UnitPrice = *req.UnitPrice
		updated = true
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return product, nil
	}

	now := time.Now()
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to update product",
			slog.String("product_id", productID))
		return nil, err
	}

	s.LogInfo(ctx, "Product updated successfully",
		slog.String("product_id", productID))
	return product, nil
}

func (s *productService) DeactivateProduct(ctx context.Context, productID string, userID string) error {
	if _, err := s.GetProductByID(ctx, productID); err != nil {
		return err
	}

	if err := s.productRepo.DeactivateProduct(ctx, productID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate product",
			slog.String("product_id", productID))
		return err
	}

	s.LogInfo(ctx, "Product deactivated successfully",
		slog.String("product_id", productID))
	return nil
}
