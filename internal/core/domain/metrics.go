package domain

import "github.com/shopspring/decimal"

// Metrics is the aggregate summary computed over a transaction collection
// for daily-book displays.
type Metrics struct {
	TotalCount   int             `json:"totalCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	UnpaidAmount decimal.Decimal `json:"unpaidAmount"`
	PaidCount    int             `json:"paidCount"`
	UnpaidCount  int             `json:"unpaidCount"`

	// Distinct name lists in order of first appearance, for truncated display.
	Counterparties DisplayList `json:"counterparties"`
	LineItems      DisplayList `json:"lineItems"`
}

// DisplayList holds distinct names in first-appearance order with the
// "show first 3, +N more" truncation applied.
type DisplayList struct {
	Total    int      `json:"total"`
	Shown    []string `json:"shown"`
	Overflow int      `json:"overflow"` // N in "+N more"; 0 when everything fits
}
