package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the stored record type.
type TransactionType string

// PaymentMode is the stored mode of payment.
type PaymentMode string

// Transaction is the transactions table row. Nullable foreign keys use
// sql.NullString so they round-trip as SQL NULL rather than empty strings.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	Type                 TransactionType `db:"type"`
	Date                 time.Time       `db:"date"`
	TotalAmount          decimal.Decimal `db:"total_amount"`
	PaidAmount           decimal.Decimal `db:"paid_amount"`
	RemainingPayment     decimal.Decimal `db:"remaining_payment"`
	SourceAccountID      sql.NullString  `db:"source_account_id"`
	DestinationAccountID sql.NullString  `db:"destination_account_id"`
	AccountPayableID     sql.NullString  `db:"account_payable_id"`
	AccountReceivableID  sql.NullString  `db:"account_receivable_id"`
	ModeOfPayment        PaymentMode     `db:"mode_of_payment"`
	Description          string          `db:"description"`
	UserID               string          `db:"user_id"`
	IdempotencyKey       sql.NullString  `db:"idempotency_key"`
	AuditFields
}

// LineItem is the transaction_line_items table row for sale/purchase records.
type LineItem struct {
	LineItemID    string          `db:"line_item_id"`
	TransactionID string          `db:"transaction_id"`
	ProductID     string          `db:"product_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
}
