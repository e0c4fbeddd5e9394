package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// associationService implements the AssociationSvcFacade interface
type associationService struct {
	BaseService
	junctionRepo     portsrepo.JunctionRepositoryFacade
	productRepo      portsrepo.ProductRepositoryFacade
	purchaserRepo    portsrepo.PurchaserRepositoryFacade
	counterpartyRepo portsrepo.CounterpartyReader
}

// NewAssociationService creates a new association service
func NewAssociationService(
	junctionRepo portsrepo.JunctionRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	purchaserRepo portsrepo.PurchaserRepositoryFacade,
	counterpartyRepo portsrepo.CounterpartyReader,
) portssvc.AssociationSvcFacade {
	return &associationService{
		junctionRepo:     junctionRepo,
		productRepo:      productRepo,
		purchaserRepo:    purchaserRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

var _ portssvc.AssociationSvcFacade = (*associationService)(nil)

// validatePair checks that both sides of the pair exist and carry the entity
// type the junction kind expects.
func (s *associationService) validatePair(ctx context.Context, kind domain.JunctionKind, leftID, rightID string) error {
	switch kind {
	case domain.ProductVendor:
		if err := s.requireProduct(ctx, leftID); err != nil {
			return err
		}
		return s.requireCounterparty(ctx, rightID, domain.RoleVendor)
	case domain.ProductPurchaser:
		if err := s.requireProduct(ctx, leftID); err != nil {
			return err
		}
		return s.requirePurchaser(ctx, rightID)
	case domain.PurchaserVendor:
		if err := s.requirePurchaser(ctx, leftID); err != nil {
			return err
		}
		return s.requireCounterparty(ctx, rightID, domain.RoleVendor)
	}
	return fmt.Errorf("%w: unknown junction kind %q", apperrors.ErrValidation, kind)
}

func (s *associationService) requireProduct(ctx context.Context, productID string) error {
	if _, err := s.productRepo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: product %s", apperrors.ErrEntityNotFound, productID)
		}
		return err
	}
	return nil
}

func (s *associationService) requirePurchaser(ctx context.Context, purchaserID string) error {
	if _, err := s.purchaserRepo.FindPurchaserByID(ctx, purchaserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: purchaser %s", apperrors.ErrEntityNotFound, purchaserID)
		}
		return err
	}
	return nil
}

func (s *associationService) requireCounterparty(ctx context.Context, counterpartyID string, role domain.CounterpartyRole) error {
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: counterparty %s", apperrors.ErrEntityNotFound, counterpartyID)
		}
		return err
	}
	if cp.Role != role {
		return fmt.Errorf("%w: %s is not a %s", apperrors.ErrEntityNotFound, counterpartyID, role.Label())
	}
	return nil
}

func (s *associationService) Associate(ctx context.Context, kind domain.JunctionKind, req dto.CreateJunctionRequest, userID string) error {
	if err := s.validatePair(ctx, kind, req.LeftID, req.RightID); err != nil {
		return err
	}

	pair := domain.JunctionPair{Kind: kind, LeftID: req.LeftID, RightID: req.RightID}
	if err := s.junctionRepo.SaveJunction(ctx, pair); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateRelationship) {
			s.LogError(ctx, err, "Failed to save association",
				slog.String("kind", string(kind)),
				slog.String("left_id", req.LeftID),
				slog.String("right_id", req.RightID))
		}
		return err
	}

	s.LogInfo(ctx, "Association created",
		slog.String("kind", string(kind)),
		slog.String("left_id", req.LeftID),
		slog.String("right_id", req.RightID),
		slog.String("created_by", userID))
	return nil
}

// AssociateBatch validates every pair up front and then writes them in a
// single database transaction. Pairs that already exist are skipped by the
// store; any other failure rolls back the whole batch.
func (s *associationService) AssociateBatch(ctx context.Context, kind domain.JunctionKind, req dto.BatchJunctionRequest, userID string) (*dto.BatchJunctionResponse, error) {
	pairs := make([]domain.JunctionPair, 0, len(req.RightIDs))
	seen := make(map[string]bool, len(req.RightIDs))
	for _, rightID := range req.RightIDs {
		if seen[rightID] {
			continue
		}
		seen[rightID] = true
		if err := s.validatePair(ctx, kind, req.LeftID, rightID); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrPartialBatch, err)
		}
		pairs = append(pairs, domain.JunctionPair{Kind: kind, LeftID: req.LeftID, RightID: rightID})
	}

	inserted, err := s.junctionRepo.SaveJunctionsBatch(ctx, pairs)
	if err != nil {
		s.LogError(ctx, err, "Failed to save association batch",
			slog.String("kind", string(kind)),
			slog.String("left_id", req.LeftID),
			slog.Int("pairs", len(pairs)))
		return nil, err
	}

	s.LogInfo(ctx, "Association batch created",
		slog.String("kind", string(kind)),
		slog.String("left_id", req.LeftID),
		slog.Int("requested", len(pairs)),
		slog.Int("inserted", inserted),
		slog.String("created_by", userID))
	return &dto.BatchJunctionResponse{
		Requested: len(pairs),
		Inserted:  inserted,
		Skipped:   len(pairs) - inserted,
	}, nil
}

func (s *associationService) Dissociate(ctx context.Context, kind domain.JunctionKind, req dto.CreateJunctionRequest, userID string) error {
	pair := domain.JunctionPair{Kind: kind, LeftID: req.LeftID, RightID: req.RightID}
	if err := s.junctionRepo.DeleteJunction(ctx, pair); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete association",
				slog.String("kind", string(kind)),
				slog.String("left_id", req.LeftID),
				slog.String("right_id", req.RightID))
		}
		return err
	}

	s.LogInfo(ctx, "Association removed",
		slog.String("kind", string(kind)),
		slog.String("left_id", req.LeftID),
		slog.String("right_id", req.RightID),
		slog.String("removed_by", userID))
	return nil
}

func (s *associationService) ListAssociations(ctx context.Context, kind domain.JunctionKind, leftID string) ([]domain.JunctionPair, error) {
	pairs, err := s.junctionRepo.ListJunctions(ctx, kind, leftID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list associations",
			slog.String("kind", string(kind)),
			slog.String("left_id", leftID))
		return nil, err
	}
	if pairs == nil {
		return []domain.JunctionPair{}, nil
	}
	return pairs, nil
}
