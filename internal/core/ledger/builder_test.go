package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
)

func mustResolve(t *testing.T, entities []domain.Counterparty, id string, role domain.CounterpartyRole) ledger.Resolution {
	t.Helper()
	res, err := ledger.ResolveEntity(entities, id, role)
	require.NoError(t, err)
	return res
}

func buildInput(res ledger.Resolution, amount int64, dir ledger.Direction) ledger.BuildInput {
	return ledger.BuildInput{
		Resolution: res,
		Amount:     decimal.NewFromInt(amount),
		Direction:  dir,
		AccountID:  "acc-1",
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Mode:       domain.ModeCash,
		UserID:     "user-1",
	}
}

func TestBuildTransaction_VendorPayment(t *testing.T) {
	res := mustResolve(t, []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}, "v1", domain.RoleVendor)

	rec, err := ledger.BuildTransaction(buildInput(res, 2000, ledger.Payment))

	require.NoError(t, err)
	assert.Equal(t, domain.PayAble, rec.Type)
	assert.Equal(t, "5000.00", rec.TotalAmount.StringFixed(2))
	assert.Equal(t, "2000.00", rec.PaidAmount.StringFixed(2))
	assert.Equal(t, "3000.00", rec.RemainingPayment.StringFixed(2))
	assert.Equal(t, "v1", rec.AccountPayableID)
	assert.Empty(t, rec.AccountReceivableID)
	assert.Equal(t, "acc-1", rec.SourceAccountID)
	assert.Empty(t, rec.DestinationAccountID)
	assert.NotEmpty(t, rec.TransactionID)
}

func TestBuildTransaction_ClientReceiptFullySettles(t *testing.T) {
	res := mustResolve(t, []domain.Counterparty{client("c1", "Retail Client", 5000)}, "c1", domain.RoleClient)

	rec, err := ledger.BuildTransaction(buildInput(res, 5000, ledger.Receipt))

	require.NoError(t, err)
	assert.Equal(t, domain.ReceiveAble, rec.Type)
	assert.Equal(t, "0.00", rec.RemainingPayment.StringFixed(2))
	assert.True(t, rec.IsPaid())
	assert.Equal(t, "c1", rec.AccountReceivableID)
	assert.Equal(t, "acc-1", rec.DestinationAccountID)
}

func TestBuildTransaction_ReversalFlowsMoveAwayFromZero(t *testing.T) {
	// Receipt from an overpaid vendor and refund-like payment to a client
	// both add to the outstanding balance.
	vres := mustResolve(t, []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}, "v1", domain.RoleVendor)
	rec, err := ledger.BuildTransaction(buildInput(vres, 300, ledger.Receipt))
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiveAbleVendor, rec.Type)
	assert.Equal(t, "5300.00", rec.RemainingPayment.StringFixed(2))
	assert.Equal(t, "acc-1", rec.DestinationAccountID)

	cres := mustResolve(t, []domain.Counterparty{client("c1", "Retail Client", 1000)}, "c1", domain.RoleClient)
	rec, err = ledger.BuildTransaction(buildInput(cres, 250, ledger.Payment))
	require.NoError(t, err)
	assert.Equal(t, domain.PayAbleClient, rec.Type)
	assert.Equal(t, "1250.00", rec.RemainingPayment.StringFixed(2))
	assert.Equal(t, "acc-1", rec.SourceAccountID)
}

func TestBuildTransaction_NaturalSettlementSubtractsForBothRoles(t *testing.T) {
	for _, tc := range []struct {
		role domain.CounterpartyRole
		dir  ledger.Direction
	}{
		{domain.RoleVendor, ledger.Payment},
		{domain.RoleClient, ledger.Receipt},
	} {
		entities := []domain.Counterparty{
			{CounterpartyID: "e1", Name: "Entity", Role: tc.role, Balance: decimal.NewFromInt(900), IsActive: true},
		}
		res := mustResolve(t, entities, "e1", tc.role)
		rec, err := ledger.BuildTransaction(buildInput(res, 400, tc.dir))
		require.NoError(t, err)
		assert.Equal(t, "500.00", rec.RemainingPayment.StringFixed(2), "role %s", tc.role)
	}
}

func TestBuildTransaction_ZeroAndNegativeAmountsRejected(t *testing.T) {
	res := mustResolve(t, []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}, "v1", domain.RoleVendor)

	in := buildInput(res, 0, ledger.Payment)
	_, err := ledger.BuildTransaction(in)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	in.Amount = decimal.NewFromInt(-10)
	_, err = ledger.BuildTransaction(in)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestBuildTransaction_MissingAccountRejected(t *testing.T) {
	res := mustResolve(t, []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}, "v1", domain.RoleVendor)
	in := buildInput(res, 100, ledger.Payment)
	in.AccountID = ""

	_, err := ledger.BuildTransaction(in)

	assert.ErrorIs(t, err, apperrors.ErrMissingAccount)
}

func TestBuildTransaction_UnresolvedEntityRejected(t *testing.T) {
	in := buildInput(ledger.Resolution{}, 100, ledger.Payment)

	_, err := ledger.BuildTransaction(in)

	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestBuildTransaction_AuditNoteAppended(t *testing.T) {
	res := mustResolve(t, []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}, "v1", domain.RoleVendor)
	in := buildInput(res, 2000, ledger.Payment)
	in.Description = "march settlement"

	rec, err := ledger.BuildTransaction(in)

	require.NoError(t, err)
	assert.Equal(t, "march settlement\nNote: Steel Traders (Vendor) balance at time of payment is: Rs 5,000.00", rec.Description)
}

func TestBuildTransaction_AuditNoteWithoutUserDescription(t *testing.T) {
	res := mustResolve(t, []domain.Counterparty{client("c1", "Retail Client", 750)}, "c1", domain.RoleClient)

	rec, err := ledger.BuildTransaction(buildInput(res, 750, ledger.Receipt))

	require.NoError(t, err)
	assert.Equal(t, "Note: Retail Client (Client) balance at time of receipt is: Rs 750.00", rec.Description)
}

func TestBuildTransaction_RemainingFeedsBackToOriginalBalance(t *testing.T) {
	// total - paid == remaining, so settling the remaining amount in a second
	// transaction reconstructs the original outstanding balance exactly.
	res := mustResolve(t, []domain.Counterparty{vendor("v1", "Steel Traders", 5000)}, "v1", domain.RoleVendor)
	first, err := ledger.BuildTransaction(buildInput(res, 2000, ledger.Payment))
	require.NoError(t, err)

	assert.True(t, first.TotalAmount.Sub(first.PaidAmount).Equal(first.RemainingPayment))

	second := []domain.Counterparty{vendor("v1", "Steel Traders", 0)}
	second[0].Balance = first.RemainingPayment
	res2 := mustResolve(t, second, "v1", domain.RoleVendor)
	rec2, err := ledger.BuildTransaction(buildInput(res2, 3000, ledger.Payment))
	require.NoError(t, err)

	assert.True(t, rec2.RemainingPayment.IsZero())
	assert.True(t, res2.CurrentBalance.Add(first.PaidAmount).Equal(res.CurrentBalance))
}

func TestBuildAdvance_AlwaysFullySettled(t *testing.T) {
	c := client("c1", "Retail Client", 0)

	rec, err := ledger.BuildAdvance(c, decimal.NewFromInt(1500), "acc-1",
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), domain.ModeBankTransfer, "", "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.AdvanceSalePayment, rec.Type)
	assert.Equal(t, "1500.00", rec.TotalAmount.StringFixed(2))
	assert.Equal(t, "1500.00", rec.PaidAmount.StringFixed(2))
	assert.Equal(t, "0.00", rec.RemainingPayment.StringFixed(2))
	assert.Equal(t, "c1", rec.AccountReceivableID)
}

func TestBuildAdvance_Validation(t *testing.T) {
	c := client("c1", "Retail Client", 0)
	now := time.Now()

	_, err := ledger.BuildAdvance(c, decimal.Zero, "acc-1", now, domain.ModeCash, "", "u")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = ledger.BuildAdvance(c, decimal.NewFromInt(10), "", now, domain.ModeCash, "", "u")
	assert.ErrorIs(t, err, apperrors.ErrMissingAccount)

	_, err = ledger.BuildAdvance(domain.Counterparty{}, decimal.NewFromInt(10), "acc-1", now, domain.ModeCash, "", "u")
	assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
}

func TestBuildInternal_DepositCreditsDestination(t *testing.T) {
	rec, err := ledger.BuildInternal(domain.Deposit, decimal.NewFromInt(9000), "acc-1",
		time.Now(), domain.ModeBankTransfer, "owner deposit", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "acc-1", rec.DestinationAccountID)
	assert.Empty(t, rec.SourceAccountID)
	assert.True(t, rec.IsPaid())
}

func TestBuildInternal_ExpensesDebitSource(t *testing.T) {
	for _, typ := range []domain.TransactionType{domain.Payroll, domain.FixedUtility, domain.FixedExpense, domain.Miscellaneous} {
		rec, err := ledger.BuildInternal(typ, decimal.NewFromInt(100), "acc-1", time.Now(), domain.ModeCash, "", "u")
		require.NoError(t, err)
		assert.Equal(t, "acc-1", rec.SourceAccountID, "type %s", typ)
		assert.Empty(t, rec.DestinationAccountID, "type %s", typ)
	}
}

func TestBuildInternal_RejectsCounterpartyLinkedTypes(t *testing.T) {
	_, err := ledger.BuildInternal(domain.PayAble, decimal.NewFromInt(100), "acc-1", time.Now(), domain.ModeCash, "", "u")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
