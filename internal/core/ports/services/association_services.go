package services

import (
	"context"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// ProductSvcFacade defines operations for the product catalog
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error
}

// PurchaserSvcFacade defines operations for purchasers
type PurchaserSvcFacade interface {
	CreatePurchaser(ctx context.Context, req dto.CreatePurchaserRequest, userID string) (*domain.Purchaser, error)
	GetPurchaserByID(ctx context.Context, purchaserID string) (*domain.Purchaser, error)
	ListPurchasers(ctx context.Context, includeInactive bool) ([]domain.Purchaser, error)
	UpdatePurchaser(ctx context.Context, purchaserID string, req dto.UpdatePurchaserRequest, userID string) (*domain.Purchaser, error)
	DeactivatePurchaser(ctx context.Context, purchaserID string, userID string) error
}

// AssociationSvcFacade defines operations on many-to-many junction rows
// between products, vendors, purchasers and clients. Batch association is
// all-or-nothing; pairs that already exist are skipped, not failures.
type AssociationSvcFacade interface {
	// Associate creates a single association pair.
	Associate(ctx context.Context, kind domain.JunctionKind, req dto.CreateJunctionRequest, userID string) error

	// AssociateBatch creates many pairs for one left-side entity in a single
	// database transaction and reports how many were actually inserted.
	AssociateBatch(ctx context.Context, kind domain.JunctionKind, req dto.BatchJunctionRequest, userID string) (*dto.BatchJunctionResponse, error)

	// Dissociate removes a single association pair.
	Dissociate(ctx context.Context, kind domain.JunctionKind, req dto.CreateJunctionRequest, userID string) error

	// ListAssociations retrieves the right-side IDs associated with leftID.
	ListAssociations(ctx context.Context, kind domain.JunctionKind, leftID string) ([]domain.JunctionPair, error)
}
