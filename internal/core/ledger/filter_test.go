package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
)

func filterItem(id string, date time.Time, remaining int64, description, counterparty string) ledger.FilterItem {
	return ledger.FilterItem{
		Record: domain.TransactionRecord{
			TransactionID:    id,
			Type:             domain.PayAble,
			Date:             date,
			TotalAmount:      decimal.NewFromInt(1000),
			PaidAmount:       decimal.NewFromInt(1000 - remaining),
			RemainingPayment: decimal.NewFromInt(remaining),
			SourceAccountID:  "acc-1",
			AccountPayableID: "v1",
			ModeOfPayment:    domain.ModeCash,
			Description:      description,
		},
		CounterpartyName: counterparty,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	items := []ledger.FilterItem{
		filterItem("t1", day(2024, 3, 1), 0, "paid abc invoice", "Steel Traders"),
		filterItem("t2", day(2024, 3, 1), 0, "only xyz here", "Cement Depot"),
	}

	got := ledger.Apply(items, ledger.Criteria{Search: "ABC"})

	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].Record.TransactionID)
}

func TestApply_SearchMatchesCounterpartyAndAmount(t *testing.T) {
	items := []ledger.FilterItem{
		filterItem("t1", day(2024, 3, 1), 250, "", "Steel Traders"),
		filterItem("t2", day(2024, 3, 1), 0, "", "Cement Depot"),
	}

	assert.Len(t, ledger.Apply(items, ledger.Criteria{Search: "steel"}), 1)
	assert.Len(t, ledger.Apply(items, ledger.Criteria{Search: "250"}), 1)
	assert.Len(t, ledger.Apply(items, ledger.Criteria{Search: "t2"}), 1)
	assert.Empty(t, ledger.Apply(items, ledger.Criteria{Search: "no-match"}))
}

func TestApply_DateRangeIsCalendarInclusive(t *testing.T) {
	// A record late in the day on date_to must still match.
	late := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	items := []ledger.FilterItem{
		filterItem("t1", late, 0, "", ""),
		filterItem("t2", day(2024, 3, 16), 0, "", ""),
	}
	from := day(2024, 3, 15)
	to := day(2024, 3, 15)

	got := ledger.Apply(items, ledger.Criteria{DateFrom: &from, DateTo: &to})

	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].Record.TransactionID)
}

func TestApply_DateFromEqualsDateToIncludesThatDay(t *testing.T) {
	d := day(2024, 3, 15)
	items := []ledger.FilterItem{filterItem("t1", d.Add(12*time.Hour), 0, "", "")}

	got := ledger.Apply(items, ledger.Criteria{DateFrom: &d, DateTo: &d})

	assert.Len(t, got, 1)
}

func TestApply_PaymentStatus(t *testing.T) {
	items := []ledger.FilterItem{
		filterItem("paid", day(2024, 3, 1), 0, "", ""),
		filterItem("unpaid", day(2024, 3, 1), 400, "", ""),
	}

	got := ledger.Apply(items, ledger.Criteria{PaymentStatus: ledger.StatusPaid})
	require.Len(t, got, 1)
	assert.Equal(t, "paid", got[0].Record.TransactionID)

	got = ledger.Apply(items, ledger.Criteria{PaymentStatus: ledger.StatusUnpaid})
	require.Len(t, got, 1)
	assert.Equal(t, "unpaid", got[0].Record.TransactionID)

	assert.Len(t, ledger.Apply(items, ledger.Criteria{PaymentStatus: ledger.StatusAll}), 2)
}

func TestApply_SentinelValuesImposeNoConstraint(t *testing.T) {
	items := []ledger.FilterItem{
		filterItem("t1", day(2024, 3, 1), 0, "", ""),
		filterItem("t2", day(2024, 3, 2), 100, "", ""),
	}

	got := ledger.Apply(items, ledger.Criteria{
		AccountID:     "all_accounts",
		ModeOfPayment: "all_modes",
		PaymentStatus: ledger.StatusAll,
	})

	assert.Len(t, got, 2)
}

func TestApply_ExactMatchDimensions(t *testing.T) {
	other := filterItem("t2", day(2024, 3, 1), 0, "", "")
	other.Record.SourceAccountID = "acc-2"
	other.Record.AccountPayableID = ""
	other.Record.AccountReceivableID = "c9"
	other.Record.ModeOfPayment = domain.ModeCheck
	items := []ledger.FilterItem{
		filterItem("t1", day(2024, 3, 1), 0, "", ""),
		other,
	}

	got := ledger.Apply(items, ledger.Criteria{AccountID: "acc-1"})
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].Record.TransactionID)

	got = ledger.Apply(items, ledger.Criteria{CounterpartyID: "c9"})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Record.TransactionID)

	got = ledger.Apply(items, ledger.Criteria{ModeOfPayment: string(domain.ModeCheck)})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Record.TransactionID)
}

func TestApply_CriteriaAreANDCombined(t *testing.T) {
	items := []ledger.FilterItem{
		filterItem("t1", day(2024, 3, 1), 0, "march abc", ""),
		filterItem("t2", day(2024, 3, 1), 400, "march abc", ""),
	}

	got := ledger.Apply(items, ledger.Criteria{Search: "abc", PaymentStatus: ledger.StatusUnpaid})

	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Record.TransactionID)
}

func TestApply_IsIdempotentAndOrderPreserving(t *testing.T) {
	items := []ledger.FilterItem{
		filterItem("t3", day(2024, 3, 3), 0, "", ""),
		filterItem("t1", day(2024, 3, 1), 0, "", ""),
		filterItem("t2", day(2024, 3, 2), 0, "", ""),
	}
	c := ledger.Criteria{PaymentStatus: ledger.StatusPaid}

	first := ledger.Apply(items, c)
	second := ledger.Apply(items, c)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Record.TransactionID, second[i].Record.TransactionID)
	}
	// Input order is preserved.
	assert.Equal(t, "t3", first[0].Record.TransactionID)
	assert.Equal(t, "t1", first[1].Record.TransactionID)
	assert.Equal(t, "t2", first[2].Record.TransactionID)
}
