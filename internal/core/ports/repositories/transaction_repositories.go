package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// ListTransactionsQuery carries server-side filter dimensions for listing.
// Semantics match the in-memory filter engine: date bounds are calendar
// inclusive with date_to covering the entire day, empty values constrain
// nothing.
type ListTransactionsQuery struct {
	Type           string
	SourceAccount  string
	CounterpartyID string
	ModeOfPayment  string
	DateFrom       *time.Time
	DateTo         *time.Time
	Limit          int
	NextToken      *string
}

// BalanceDeltas names every balance adjustment a ledger mutation applies
// atomically with the record itself.
type BalanceDeltas struct {
	Accounts       map[string]decimal.Decimal // account_id -> signed delta
	Counterparties map[string]decimal.Decimal // counterparty_id -> signed delta
}

// TransactionReader defines read operations for ledger records.
type TransactionReader interface {
	// FindTransactionByID retrieves a record by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error)

	// FindTransactionByIdempotencyKey retrieves the record created under key,
	// or apperrors.ErrNotFound when the key was never used.
	FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.TransactionRecord, error)

	// ListTransactions retrieves a filtered page ordered by date desc,
	// created_at desc, with an opaque next-token for the following page.
	ListTransactions(ctx context.Context, q ListTransactionsQuery) ([]domain.TransactionRecord, *string, error)

	// FindLineItemsByTransactionID retrieves sale/purchase line items.
	FindLineItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.LineItem, error)
}

// TransactionWriter defines write operations for ledger records. Records are
// immutable: there is no update, only save and delete, and both apply their
// balance deltas in the same database transaction as the record row.
type TransactionWriter interface {
	// SaveTransaction persists a record with its line items and balance deltas
	// atomically.
	SaveTransaction(ctx context.Context, rec domain.TransactionRecord, items []domain.LineItem, deltas BalanceDeltas) error

	// DeleteTransaction removes a record, applying the reversing deltas
	// atomically with the delete.
	DeleteTransaction(ctx context.Context, transactionID string, deltas BalanceDeltas) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
