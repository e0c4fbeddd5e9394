package ledger

import (
	"strings"
	"time"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// Payment-status filter values. AllStatuses (or empty) imposes no constraint.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
	StatusAll    = "all"
)

// allSentinelPrefix marks "no constraint" dropdown values like "all_accounts".
const allSentinelPrefix = "all_"

// Criteria is the AND-combined filter set applied to transaction collections.
// Empty strings, nil dates and "all_*" sentinel values mean "no constraint"
// for that dimension.
type Criteria struct {
	Search         string     // case-insensitive substring over id, description, counterparty name, amount-as-string
	DateFrom       *time.Time // inclusive calendar date
	DateTo         *time.Time // inclusive calendar date; end-of-day adjusted
	AccountID      string     // exact match on source or destination account
	CounterpartyID string     // exact match on payable or receivable id
	PaymentStatus  string     // paid | unpaid | all
	ModeOfPayment  string     // exact match
	Type           string     // exact match on transaction type
}

// FilterItem pairs a record with its counterparty display name for text search.
type FilterItem struct {
	Record           domain.TransactionRecord
	CounterpartyName string
}

// Apply returns the subset of items matching every active criterion, in input
// order. It is deterministic and stateless: identical inputs yield identical
// outputs regardless of how often or in what order it is invoked, so callers
// may re-run it on every keystroke.
func Apply(items []FilterItem, c Criteria) []FilterItem {
	out := make([]FilterItem, 0, len(items))
	for _, it := range items {
		if Matches(it, c) {
			out = append(out, it)
		}
	}
	return out
}

// Matches reports whether a single item passes every active criterion.
func Matches(it FilterItem, c Criteria) bool {
	rec := it.Record

	if active(c.Type) && string(rec.Type) != c.Type {
		return false
	}
	if active(c.AccountID) && rec.SourceAccountID != c.AccountID && rec.DestinationAccountID != c.AccountID {
		return false
	}
	if active(c.CounterpartyID) && rec.AccountPayableID != c.CounterpartyID && rec.AccountReceivableID != c.CounterpartyID {
		return false
	}
	if active(c.ModeOfPayment) && string(rec.ModeOfPayment) != c.ModeOfPayment {
		return false
	}

	switch c.PaymentStatus {
	case StatusPaid:
		if !rec.IsPaid() {
			return false
		}
	case StatusUnpaid:
		if rec.IsPaid() {
			return false
		}
	}

	if c.DateFrom != nil && rec.Date.Before(startOfDay(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && rec.Date.After(endOfDay(*c.DateTo)) {
		return false
	}

	if c.Search != "" && !matchesSearch(it, c.Search) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match across the record's
// id, description, counterparty name and amounts rendered as plain strings.
func matchesSearch(it FilterItem, search string) bool {
	needle := strings.ToLower(search)
	haystacks := []string{
		it.Record.TransactionID,
		it.Record.Description,
		it.CounterpartyName,
		it.Record.TotalAmount.String(),
		it.Record.PaidAmount.String(),
		it.Record.RemainingPayment.String(),
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// active reports whether a string criterion constrains the result set.
func active(v string) bool {
	return v != "" && v != StatusAll && !strings.HasPrefix(v, allSentinelPrefix)
}

// Date bounds compare as calendar dates, not instants: date_to includes the
// entire day regardless of any time-of-day component on the record.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
