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

// purchaserService implements the PurchaserSvcFacade interface
type purchaserService struct {
	BaseService
	purchaserRepo portsrepo.PurchaserRepositoryFacade
}

// NewPurchaserService creates a new purchaser service
func NewPurchaserService(repo portsrepo.PurchaserRepositoryFacade) portssvc.PurchaserSvcFacade {
	return &purchaserService{purchaserRepo: repo}
}

var _ portssvc.PurchaserSvcFacade = (*purchaserService)(nil)

func (s *purchaserService) CreatePurchaser(ctx context.Context, req dto.CreatePurchaserRequest, userID string) (*domain.Purchaser, error) {
	now := time.Now()

	purchaser := domain.Purchaser{
		PurchaserID: uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.purchaserRepo.SavePurchaser(ctx, purchaser); err != nil {
		s.LogError(ctx, err, "Failed to save purchaser",
			slog.String("purchaser_id", purchaser.PurchaserID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchaser created successfully",
		slog.String("purchaser_id", purchaser.PurchaserID))
	return &purchaser, nil
}

func (s *purchaserService) GetPurchaserByID(ctx context.Context, purchaserID string) (*domain.Purchaser, error) {
	purchaser, err := s.purchaserRepo.FindPurchaserByID(ctx, purchaserID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find purchaser by ID",
				slog.String("purchaser_id", purchaserID))
		}
		return nil, err
	}
	return purchaser, nil
}

func (s *purchaserService) ListPurchasers(ctx context.Context, includeInactive bool) ([]domain.Purchaser, error) {
	purchasers, err := s.purchaserRepo.ListPurchasers(ctx, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchasers")
		return nil, fmt.Errorf("failed to list purchasers: %w", err)
	}
	if purchasers == nil {
		return []domain.Purchaser{}, nil
	}
	return purchasers, nil
}

func (s *purchaserService) UpdatePurchaser(ctx context.Context, purchaserID string, req dto.UpdatePurchaserRequest, userID string) (*domain.Purchaser, error) {
	purchaser, err := s.GetPurchaserByID(ctx, purchaserID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		purchaser.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		purchaser.Phone = *req.Phone
		updated = true
	}
	if req.IsActive != nil {
		purchaser.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return purchaser, nil
	}

	now := time.Now()
	purchaser.LastUpdatedAt = now
	purchaser.LastUpdatedBy = userID

	if err := s.purchaserRepo.UpdatePurchaser(ctx, *purchaser); err != nil {
		s.LogError(ctx, err, "Failed to update purchaser",
			slog.String("purchaser_id", purchaserID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchaser updated successfully",
		slog.String("purchaser_id", purchaserID))
	return purchaser, nil
}

func (s *purchaserService) DeactivatePurchaser(ctx context.Context, purchaserID string, userID string) error {
	if _, err := s.GetPurchaserByID(ctx, purchaserID); err != nil {
		return err
	}

	if err := s.purchaserRepo.DeactivatePurchaser(ctx, purchaserID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate purchaser",
			slog.String("purchaser_id", purchaserID))
		return err
	}

	s.LogInfo(ctx, "Purchaser deactivated successfully",
		slog.String("purchaser_id", purchaserID))
	return nil
}
