package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates every kind of ledger record the system creates.
type TransactionType string

const (
	// Settlement flows against counterparties.
	PayAble           TransactionType = "pay_able"            // payment to a vendor
	PayAbleClient     TransactionType = "pay_able_client"     // refund-like payment to a client
	ReceiveAble       TransactionType = "receive_able"        // receipt from a client
	ReceiveAbleVendor TransactionType = "receive_able_vendor" // overpay correction from a vendor

	// Advance flows: no prior debt, settled instantly.
	AdvanceSalePayment TransactionType = "advance_sale_payment"

	// Internal operations against an account only.
	Deposit       TransactionType = "deposit"
	Payroll       TransactionType = "payroll"
	FixedUtility  TransactionType = "fixed_utility"
	FixedExpense  TransactionType = "fixed_expense"
	Miscellaneous TransactionType = "miscellaneous"

	// Daily-book records.
	Sale     TransactionType = "sale"
	Purchase TransactionType = "purchase"
)

// IsCounterpartyLinked reports whether records of this type must reference
// exactly one of account_payable_id / account_receivable_id.
func (t TransactionType) IsCounterpartyLinked() bool {
	switch t {
	case PayAble, PayAbleClient, ReceiveAble, ReceiveAbleVendor, AdvanceSalePayment:
		return true
	}
	return false
}

// PaymentMode enumerates how money physically moved.
type PaymentMode string

const (
	ModeCash         PaymentMode = "cash"
	ModeCheck        PaymentMode = "check"
	ModeBankTransfer PaymentMode = "bank_transfer"
	ModePayOrder     PaymentMode = "pay_order"
)

// TransactionRecord is the canonical immutable ledger record.
//
// For settlement types: TotalAmount is the counterparty's pre-transaction
// outstanding balance, PaidAmount is what was settled now, and
// RemainingPayment = TotalAmount - PaidAmount in the signed direction of the
// entity. Records are created once and never amended; deletion is the only
// mutation (observed for sales and receipts).
type TransactionRecord struct {
	TransactionID        string          `json:"transactionID"` // Primary key (UUID)
	Type                 TransactionType `json:"type"`
	Date                 time.Time       `json:"date"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	RemainingPayment     decimal.Decimal `json:"remainingPayment"`
	SourceAccountID      string          `json:"sourceAccountID,omitempty"`      // Nullable
	DestinationAccountID string          `json:"destinationAccountID,omitempty"` // Nullable
	AccountPayableID     string          `json:"accountPayableID,omitempty"`     // Nullable, mutually exclusive with receivable
	AccountReceivableID  string          `json:"accountReceivableID,omitempty"`  // Nullable
	ModeOfPayment        PaymentMode     `json:"modeOfPayment"`
	Description          string          `json:"description"` // Auto-annotated with a balance-snapshot note
	UserID               string          `json:"userID"`
	IdempotencyKey       string          `json:"-"` // Optional duplicate-submission guard
	AuditFields
}

// IsPaid reports whether the record is fully settled. A missing/zero/negative
// remaining amount counts as paid, the default-safe policy for malformed rows.
func (t TransactionRecord) IsPaid() bool {
	return !t.RemainingPayment.IsPositive()
}
