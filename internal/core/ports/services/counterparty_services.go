package services

import (
	"context"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// CounterpartyReaderSvc defines read operations for payables/receivables
type CounterpartyReaderSvc interface {
	// GetCounterpartyByID retrieves a counterparty by its unique identifier.
	GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterparties retrieves all active counterparties for a role.
	ListCounterparties(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error)

	// ListSettlementCandidates retrieves role-matching counterparties that
	// carry an outstanding balance, i.e. the ones offered for settlement.
	ListSettlementCandidates(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error)

	// ResolveForSettlement resolves a selected counterparty against the
	// candidate set, returning its current balance and classification.
	ResolveForSettlement(ctx context.Context, counterpartyID string, role domain.CounterpartyRole) (*ledger.Resolution, error)
}

// CounterpartyWriterSvc defines write operations for payables/receivables
type CounterpartyWriterSvc interface {
	// CreateCounterparty persists a new counterparty under the given role.
	CreateCounterparty(ctx context.Context, role domain.CounterpartyRole, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error)

	// UpdateCounterparty updates contact details and the active flag.
	UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error)

	// DeactivateCounterparty marks a counterparty as inactive.
	DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string) error
}

// CounterpartySvcFacade combines all counterparty-related service interfaces
type CounterpartySvcFacade interface {
	CounterpartyReaderSvc
	CounterpartyWriterSvc
}
