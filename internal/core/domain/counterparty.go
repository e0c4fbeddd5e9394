package domain

import (
	"github.com/shopspring/decimal"
)

// CounterpartyRole is the explicit vendor/client tag for a counterparty.
// The role is fixed when the entity is loaded from its API endpoint (payable
// vs receivable) rather than inferred from call-site context.
type CounterpartyRole string

const (
	// RoleVendor marks an account payable: the business owes the counterparty.
	RoleVendor CounterpartyRole = "VENDOR"
	// RoleClient marks an account receivable: the counterparty owes the business.
	RoleClient CounterpartyRole = "CLIENT"
)

// Label returns the human-readable role used in audit notes.
func (r CounterpartyRole) Label() string {
	switch r {
	case RoleVendor:
		return "Vendor"
	case RoleClient:
		return "Client"
	}
	return string(r)
}

// Counterparty represents an account payable (vendor) or account receivable
// (client).
//
// Sign convention: a vendor with positive balance is owed money by the
// business; a client with positive balance owes money to the business. A
// negative balance means the natural direction has been overshot (overpaid
// vendor, over-collected client) and only the reversal flow is valid.
type Counterparty struct {
	CounterpartyID string           `json:"counterpartyID"` // Primary key (UUID)
	Name           string           `json:"name"`
	Role           CounterpartyRole `json:"role"`
	Balance        decimal.Decimal  `json:"balance"` // Signed outstanding balance
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	IsActive       bool             `json:"isActive"`
	AuditFields
}

// HasOutstanding reports whether the counterparty has anything outstanding in
// its natural direction. Entities with balance <= 0 are excluded from
// settlement candidate lists.
func (c Counterparty) HasOutstanding() bool {
	return c.Balance.IsPositive()
}
