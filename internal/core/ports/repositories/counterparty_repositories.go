package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// CounterpartyReader defines read operations for payables/receivables.
type CounterpartyReader interface {
	// FindCounterpartyByID retrieves a counterparty by its unique identifier.
	FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error)

	// ListCounterparties retrieves all active counterparties for a role.
	ListCounterparties(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error)
}

// CounterpartyWriter defines write operations for payables/receivables.
type CounterpartyWriter interface {
	// SaveCounterparty persists a new counterparty.
	SaveCounterparty(ctx context.Context, cp domain.Counterparty) error

	// UpdateCounterparty updates contact details and the active flag.
	UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error

	// DeactivateCounterparty marks a counterparty as inactive.
	DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error
}

// CounterpartyTransactionSupport defines balance mutations inside a DB transaction.
type CounterpartyTransactionSupport interface {
	// ApplyBalanceDeltaInTx adjusts a counterparty balance within tx, locking the row.
	ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, counterpartyID string, delta decimal.Decimal, userID string, now time.Time) error
}

// CounterpartyRepositoryFacade combines all counterparty repository interfaces.
type CounterpartyRepositoryFacade interface {
	CounterpartyReader
	CounterpartyWriter
	CounterpartyTransactionSupport
}
