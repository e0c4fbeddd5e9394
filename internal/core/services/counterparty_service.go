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
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// counterpartyService implements the CounterpartySvcFacade interface
type counterpartyService struct {
	BaseService
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
	bus              *events.InvalidationBus
}

// NewCounterpartyService creates a new counterparty service
func NewCounterpartyService(repo portsrepo.CounterpartyRepositoryFacade, bus *events.InvalidationBus) portssvc.CounterpartySvcFacade {
	return &counterpartyService{
		counterpartyRepo: repo,
		bus:              bus,
	}
}

var _ portssvc.CounterpartySvcFacade = (*counterpartyService)(nil)

func (s *counterpartyService) CreateCounterparty(ctx context.Context, role domain.CounterpartyRole, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	now := time.Now()

	cp := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		Name:           req.Name,
		Role:           role,
		Balance:        req.OpeningBalance,
		Phone:          req.Phone,
		Address:        req.Address,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.counterpartyRepo.SaveCounterparty(ctx, cp); err != nil {
		s.LogError(ctx, err, "Failed to save counterparty",
			slog.String("counterparty_id", cp.CounterpartyID),
			slog.String("role", string(role)))
		return nil, err
	}

	s.bus.Invalidate(events.ReadModelCounterparties)
	s.LogInfo(ctx, "Counterparty created successfully",
		slog.String("counterparty_id", cp.CounterpartyID),
		slog.String("role", string(role)))
	return &cp, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	cp, err := s.counterpartyRepo.FindCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find counterparty by ID",
				slog.String("counterparty_id", counterpartyID))
		}
		return nil, err
	}
	return cp, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error) {
	cps, err := s.counterpartyRepo.ListCounterparties(ctx, role)
	if err != nil {
		s.LogError(ctx, err, "Failed to list counterparties",
			slog.String("role", string(role)))
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	if cps == nil {
		return []domain.Counterparty{}, nil
	}
	return cps, nil
}

// ListSettlementCandidates narrows the role listing to entities that still
// have something outstanding; only those can be settled against.
func (s *counterpartyService) ListSettlementCandidates(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error) {
	cps, err := s.ListCounterparties(ctx, role)
	if err != nil {
		return nil, err
	}
	return ledger.Candidates(cps, role), nil
}

// ResolveForSettlement resolves the selected counterparty against the role's
// candidate set, yielding its current balance and classification for the
// transaction builder.
func (s *counterpartyService) ResolveForSettlement(ctx context.Context, counterpartyID string, role domain.CounterpartyRole) (*ledger.Resolution, error) {
	cps, err := s.ListCounterparties(ctx, role)
	if err != nil {
		return nil, err
	}

	res, err := ledger.ResolveEntity(ledger.Candidates(cps, role), counterpartyID, role)
	if err != nil {
		s.LogDebug(ctx, "Counterparty did not resolve for settlement",
			slog.String("counterparty_id", counterpartyID),
			slog.String("role", string(role)),
			slog.String("error", err.Error()))
		return nil, err
	}
	return &res, nil
}

func (s *counterpartyService) UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	cp, err := s.GetCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		cp.Name = *req.Name
		updated = true
	}
	if req.Phone != nil {
		cp.Phone = *req.Phone
		updated = true
	}
	if req.Address != nil {
		cp.Address = *req.Address
		updated = true
	}
	if req.IsActive != nil {
		cp.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for counterparty update",
			slog.String("counterparty_id", counterpartyID))
		return cp, nil
	}

	now := time.Now()
	cp.LastUpdatedAt = now
	cp.LastUpdatedBy = userID

	if err := s.counterpartyRepo.UpdateCounterparty(ctx, *cp); err != nil {
		s.LogError(ctx, err, "Failed to update counterparty",
			slog.String("counterparty_id", counterpartyID))
		return nil, err
	}

	s.bus.Invalidate(events.ReadModelCounterparties)
	s.LogInfo(ctx, "Counterparty updated successfully",
		slog.String("counterparty_id", counterpartyID))
	return cp, nil
}

func (s *counterpartyService) DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string) error {
	if _, err := s.GetCounterpartyByID(ctx, counterpartyID); err != nil {
		return err
	}

	if err := s.counterpartyRepo.DeactivateCounterparty(ctx, counterpartyID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate counterparty",
			slog.String("counterparty_id", counterpartyID))
		return err
	}

	s.bus.Invalidate(events.ReadModelCounterparties)
	s.LogInfo(ctx, "Counterparty deactivated successfully",
		slog.String("counterparty_id", counterpartyID))
	return nil
}
