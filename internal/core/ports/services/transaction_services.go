package services

import (
	"context"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for ledger records
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a record with its line items.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, []domain.LineItem, error)

	// ListTransactions retrieves a filtered page of records plus a token for
	// the next page. Search and payment-status filtering happen in memory on
	// the fetched page; the remaining dimensions are pushed to the store.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.TransactionRecord, *string, error)
}

// TransactionWriterSvc defines creation and removal of ledger records.
// Every mutation adjusts the affected account and counterparty balances
// atomically with the record itself. An idempotency key, when supplied,
// makes re-submission return the originally created record.
type TransactionWriterSvc interface {
	// CreateSettlement records a payment to a vendor or receipt from a
	// client (or the reversed pairing) against the outstanding balance.
	CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error)

	// CreateAdvance records a fully settled advance sale payment.
	CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error)

	// CreateInternal records a deposit, payroll, fixed expense or
	// miscellaneous operation with no counterparty.
	CreateInternal(ctx context.Context, req dto.CreateInternalRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error)

	// CreateDailyBook records a sale or purchase with line items and a
	// possibly partial payment.
	CreateDailyBook(ctx context.Context, req dto.CreateDailyBookRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error)

	// DeleteTransaction removes a record and reverses its balance effects.
	DeleteTransaction(ctx context.Context, transactionID string, userID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
