package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
)

func metricsInput(total, paid, remaining int64, counterparty string, items ...string) ledger.MetricsInput {
	return ledger.MetricsInput{
		Record: domain.TransactionRecord{
			TotalAmount:      decimal.NewFromInt(total),
			PaidAmount:       decimal.NewFromInt(paid),
			RemainingPayment: decimal.NewFromInt(remaining),
		},
		CounterpartyName: counterparty,
		LineItemNames:    items,
	}
}

func TestComputeMetrics_PaidAndUnpaidClamping(t *testing.T) {
	// paid=100, remaining=40 -> settled 60; paid=50, remaining=50 -> settled 0.
	inputs := []ledger.MetricsInput{
		metricsInput(140, 100, 40, "A"),
		metricsInput(100, 50, 50, "B"),
	}

	m := ledger.ComputeMetrics(inputs)

	assert.Equal(t, 2, m.TotalCount)
	assert.Equal(t, "60", m.PaidAmount.String())
	assert.Equal(t, "90", m.UnpaidAmount.String())
	assert.Equal(t, "240", m.TotalAmount.String())
	assert.Equal(t, 0, m.PaidCount)
	assert.Equal(t, 2, m.UnpaidCount)
}

func TestComputeMetrics_MalformedRowsClampNonNegative(t *testing.T) {
	// remaining exceeding paid must not produce a negative settled amount,
	// and a negative remaining must not reduce the unpaid sum.
	inputs := []ledger.MetricsInput{
		metricsInput(100, 20, 80, "A"),
		metricsInput(100, 100, -30, "B"),
	}

	m := ledger.ComputeMetrics(inputs)

	assert.Equal(t, "130", m.PaidAmount.String()) // 20-80 clamps to 0; 100-(-30)=130
	assert.Equal(t, "80", m.UnpaidAmount.String())
}

func TestComputeMetrics_IsPaidTreatsNonPositiveAsSettled(t *testing.T) {
	inputs := []ledger.MetricsInput{
		metricsInput(100, 100, 0, "A"),
		metricsInput(100, 100, -5, "B"),
		metricsInput(100, 60, 40, "C"),
	}

	m := ledger.ComputeMetrics(inputs)

	assert.Equal(t, 2, m.PaidCount)
	assert.Equal(t, 1, m.UnpaidCount)
}

func TestComputeMetrics_DistinctListsTruncateAtThree(t *testing.T) {
	inputs := []ledger.MetricsInput{
		metricsInput(10, 10, 0, "Steel Traders", "Rebar"),
		metricsInput(10, 10, 0, "Cement Depot", "Cement", "Sand"),
		metricsInput(10, 10, 0, "Steel Traders", "Rebar", "Binding Wire"),
		metricsInput(10, 10, 0, "Gravel Co", "Gravel"),
		metricsInput(10, 10, 0, "Brick Works", ""),
	}

	m := ledger.ComputeMetrics(inputs)

	require.Equal(t, 4, m.Counterparties.Total)
	assert.Equal(t, []string{"Steel Traders", "Cement Depot", "Gravel Co"}, m.Counterparties.Shown)
	assert.Equal(t, 1, m.Counterparties.Overflow)

	require.Equal(t, 5, m.LineItems.Total)
	assert.Equal(t, []string{"Rebar", "Cement", "Sand"}, m.LineItems.Shown)
	assert.Equal(t, 2, m.LineItems.Overflow)
}

func TestComputeMetrics_SumsAreOrderIndependent(t *testing.T) {
	forward := []ledger.MetricsInput{
		metricsInput(140, 100, 40, "A"),
		metricsInput(100, 50, 50, "B"),
		metricsInput(70, 70, 0, "C"),
	}
	reversed := []ledger.MetricsInput{forward[2], forward[1], forward[0]}

	a := ledger.ComputeMetrics(forward)
	b := ledger.ComputeMetrics(reversed)

	assert.True(t, a.TotalAmount.Equal(b.TotalAmount))
	assert.True(t, a.PaidAmount.Equal(b.PaidAmount))
	assert.True(t, a.UnpaidAmount.Equal(b.UnpaidAmount))
	assert.Equal(t, a.TotalCount, b.TotalCount)
	assert.Equal(t, a.PaidCount, b.PaidCount)
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ledger.ComputeMetrics(nil)

	assert.Zero(t, m.TotalCount)
	assert.True(t, m.TotalAmount.IsZero())
	assert.Zero(t, m.Counterparties.Total)
	assert.Empty(t, m.Counterparties.Shown)
}
