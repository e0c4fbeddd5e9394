package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an internal cash/bank account.
type AccountType string

const (
	Cash AccountType = "CASH"
	Bank AccountType = "BANK"
)

// Account represents an internal cash or bank account of the business.
// Its balance is mutated only by applying transactions; it is never edited
// directly through the account update path.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary key (UUID)
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	AccountNumber string          `json:"accountNumber"` // Bank account number, empty for cash
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
