package models

import "github.com/shopspring/decimal"

// AccountType classifies an internal cash/bank account.
type AccountType string

// Account is the accounts table row.
type Account struct {
	AccountID     string          `db:"account_id"`
	Name          string          `db:"name"`
	AccountType   AccountType     `db:"account_type"`
	AccountNumber string          `db:"account_number"`
	Balance       decimal.Decimal `db:"balance"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
