package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// displayLimit is how many distinct names summary views show before
// collapsing the rest into "+N more".
const displayLimit = 3

// MetricsInput pairs each transaction with the display names derived from it.
// Counterparty and line-item names are optional; empty names are skipped by
// the distinct-set computation.
type MetricsInput struct {
	Record           domain.TransactionRecord
	CounterpartyName string
	LineItemNames    []string
}

// ComputeMetrics folds a transaction collection into its aggregate summary.
// Counts and sums are order-independent; only the truncated display lists
// depend on first-appearance order.
//
// PaidAmount clamps (paid - remaining) at zero per record, guarding against
// malformed rows where remaining exceeds paid. UnpaidAmount clamps remaining
// at zero symmetrically.
func ComputeMetrics(inputs []MetricsInput) domain.Metrics {
	m := domain.Metrics{
		TotalAmount:  decimal.Zero,
		PaidAmount:   decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}

	counterparties := newDistinctSet()
	lineItems := newDistinctSet()

	for _, in := range inputs {
		rec := in.Record
		m.TotalCount++
		m.TotalAmount = m.TotalAmount.Add(rec.TotalAmount)

		settled := rec.PaidAmount.Sub(rec.RemainingPayment)
		if settled.IsNegative() {
			settled = decimal.Zero
		}
		m.PaidAmount = m.PaidAmount.Add(settled)

		remaining := rec.RemainingPayment
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		m.UnpaidAmount = m.UnpaidAmount.Add(remaining)

		if rec.IsPaid() {
			m.PaidCount++
		} else {
			m.UnpaidCount++
		}

		counterparties.add(in.CounterpartyName)
		for _, name := range in.LineItemNames {
			lineItems.add(name)
		}
	}

	m.Counterparties = counterparties.display(displayLimit)
	m.LineItems = lineItems.display(displayLimit)
	return m
}

// distinctSet collects non-empty names preserving first-appearance order.
type distinctSet struct {
	seen  map[string]struct{}
	names []string
}

func newDistinctSet() *distinctSet {
	return &distinctSet{seen: make(map[string]struct{})}
}

func (s *distinctSet) add(name string) {
	if name == "" {
		return
	}
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *distinctSet) display(limit int) domain.DisplayList {
	dl := domain.DisplayList{Total: len(s.names)}
	if len(s.names) <= limit {
		dl.Shown = append([]string{}, s.names...)
		return dl
	}
	dl.Shown = append([]string{}, s.names[:limit]...)
	dl.Overflow = len(s.names) - limit
	return dl
}
