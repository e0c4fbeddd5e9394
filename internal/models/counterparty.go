package models

import "github.com/shopspring/decimal"

// CounterpartyRole is the stored vendor/client tag.
type CounterpartyRole string

// Counterparty is the counterparties table row, covering both account
// payables and account receivables.
type Counterparty struct {
	CounterpartyID string           `db:"counterparty_id"`
	Name           string           `db:"name"`
	Role           CounterpartyRole `db:"role"`
	Balance        decimal.Decimal  `db:"balance"`
	Phone          string           `db:"phone"`
	Address        string           `db:"address"`
	IsActive       bool             `db:"is_active"`
	AuditFields
}
