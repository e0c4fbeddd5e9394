// Package ledger contains the pure transaction engine: entity resolution,
// transaction construction, aggregate metrics and filtering. Nothing in this
// package performs I/O; services wrap it with persistence.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// Resolution is the outcome of resolving a selected counterparty against the
// candidate set.
type Resolution struct {
	Entity         domain.Counterparty
	CurrentBalance decimal.Decimal
	Classification domain.CounterpartyRole
}

// Candidates filters entities down to the selectable set for a role: only
// entities carrying that role with a positive outstanding balance. Entities
// with balance <= 0 have nothing outstanding in the natural direction and are
// excluded from selection lists.
func Candidates(entities []domain.Counterparty, role domain.CounterpartyRole) []domain.Counterparty {
	out := make([]domain.Counterparty, 0, len(entities))
	for _, e := range entities {
		if e.Role == role && e.HasOutstanding() {
			out = append(out, e)
		}
	}
	return out
}

// ResolveEntity finds the selected counterparty in the candidate set and
// returns it with its numeric balance and classification. A selectedID that
// matches no candidate fails with ErrEntityNotFound; the caller must block
// submission.
func ResolveEntity(entities []domain.Counterparty, selectedID string, role domain.CounterpartyRole) (Resolution, error) {
	if selectedID == "" {
		return Resolution{}, fmt.Errorf("%w: no counterparty selected", apperrors.ErrEntityNotFound)
	}
	for _, e := range entities {
		if e.CounterpartyID != selectedID || e.Role != role {
			continue
		}
		return Resolution{
			Entity:         e,
			CurrentBalance: e.Balance,
			Classification: e.Role,
		}, nil
	}
	return Resolution{}, fmt.Errorf("%w: id %s", apperrors.ErrEntityNotFound, selectedID)
}

// CoerceBalance normalizes a balance arriving as free text from an upstream
// source. Invalid or empty input coerces to zero rather than failing.
func CoerceBalance(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
