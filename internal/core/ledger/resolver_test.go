package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
)

func vendor(id, name string, balance int64) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: id,
		Name:           name,
		Role:           domain.RoleVendor,
		Balance:        decimal.NewFromInt(balance),
		IsActive:       true,
	}
}

func client(id, name string, balance int64) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: id,
		Name:           name,
		Role:           domain.RoleClient,
		Balance:        decimal.NewFromInt(balance),
		IsActive:       true,
	}
}

func TestCandidates_ExcludesNonPositiveBalances(t *testing.T) {
	entities := []domain.Counterparty{
		vendor("v1", "Steel Traders", 5000),
		vendor("v2", "Overpaid Vendor", -300),
		vendor("v3", "Settled Vendor", 0),
		client("c1", "Retail Client", 1200),
	}

	got := ledger.Candidates(entities, domain.RoleVendor)

	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].CounterpartyID)
}

func TestCandidates_RoleIsRespected(t *testing.T) {
	entities := []domain.Counterparty{
		vendor("v1", "Steel Traders", 5000),
		client("c1", "Retail Client", 1200),
	}

	got := ledger.Candidates(entities, domain.RoleClient)

	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].CounterpartyID)
}

func TestResolveEntity_Found(t *testing.T) {
	entities := []domain.Counterparty{
		vendor("v1", "Steel Traders", 5000),
		vendor("v2", "Cement Depot", 800),
	}

	res, err := ledger.ResolveEntity(entities, "v2", domain.RoleVendor)

	require.NoError(t, err)
	assert.Equal(t, "Cement Depot", res.Entity.Name)
	assert.True(t, res.CurrentBalance.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, domain.RoleVendor, res.Classification)
}

func TestResolveEntity_UnknownIDFails(t *testing.T) {
	entities := []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}

	_, err := ledger.ResolveEntity(entities, "missing", domain.RoleVendor)

	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestResolveEntity_RoleMismatchFails(t *testing.T) {
	entities := []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}

	_, err := ledger.ResolveEntity(entities, "v1", domain.RoleClient)

	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestResolveEntity_EmptySelectionFails(t *testing.T) {
	_, err := ledger.ResolveEntity(nil, "", domain.RoleVendor)

	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestCoerceBalance(t *testing.T) {
	assert.True(t, ledger.CoerceBalance("1234.56").Equal(decimal.RequireFromString("1234.56")))
	assert.True(t, ledger.CoerceBalance("").IsZero())
	assert.True(t, ledger.CoerceBalance("not-a-number").IsZero())
	assert.True(t, ledger.CoerceBalance("-42").Equal(decimal.NewFromInt(-42)))
}
