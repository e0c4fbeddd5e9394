package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/utils"
)

// SummaryParams are the query parameters accepted by the summary report.
type SummaryParams struct {
	Search          string     `form:"search"`
	DateFrom        *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo          *time.Time `form:"date_to" time_format:"2006-01-02"`
	AccountID       string     `form:"account_id"`
	CounterpartyID  string     `form:"counterparty_id"`
	PaymentStatus   string     `form:"payment_status"`
	ModeOfPayment   string     `form:"mode_of_payment"`
	TransactionType string     `form:"type"`
}

// DisplayListResponse carries a truncated distinct-name list plus a
// preformatted label such as "flour, sugar, ghee +4 more".
type DisplayListResponse struct {
	Total    int      `json:"total"`
	Shown    []string `json:"shown"`
	Overflow int      `json:"overflow"`
	Label    string   `json:"label"`
}

// SummaryResponse is the aggregate metrics payload for a filtered
// transaction collection.
type SummaryResponse struct {
	TotalCount            int                 `json:"totalCount"`
	TotalAmount           string              `json:"totalAmount"`
	TotalAmountFormatted  string              `json:"totalAmountFormatted"`
	TotalAmountPrint      string              `json:"totalAmountPrint"`
	PaidAmount            string              `json:"paidAmount"`
	PaidAmountFormatted   string              `json:"paidAmountFormatted"`
	PaidAmountPrint       string              `json:"paidAmountPrint"`
	UnpaidAmount          string              `json:"unpaidAmount"`
	UnpaidAmountFormatted string              `json:"unpaidAmountFormatted"`
	UnpaidAmountPrint     string              `json:"unpaidAmountPrint"`
	PaidCount             int                 `json:"paidCount"`
	UnpaidCount           int                 `json:"unpaidCount"`
	Counterparties        DisplayListResponse `json:"counterparties"`
	LineItems             DisplayListResponse `json:"lineItems"`
}

// ToSummaryResponse converts computed domain metrics into the API payload.
// The Print variants carry the whole-rupee strings the printable report uses.
func ToSummaryResponse(m domain.Metrics) SummaryResponse {
	return SummaryResponse{
		TotalCount:            m.TotalCount,
		TotalAmount:           m.TotalAmount.StringFixed(2),
		TotalAmountFormatted:  utils.FormatPKR(m.TotalAmount),
		TotalAmountPrint:      utils.FormatPKRPrint(m.TotalAmount),
		PaidAmount:            m.PaidAmount.StringFixed(2),
		PaidAmountFormatted:   utils.FormatPKR(m.PaidAmount),
		PaidAmountPrint:       utils.FormatPKRPrint(m.PaidAmount),
		UnpaidAmount:          m.UnpaidAmount.StringFixed(2),
		UnpaidAmountFormatted: utils.FormatPKR(m.UnpaidAmount),
		UnpaidAmountPrint:     utils.FormatPKRPrint(m.UnpaidAmount),
		PaidCount:             m.PaidCount,
		UnpaidCount:           m.UnpaidCount,
		Counterparties:        toDisplayListResponse(m.Counterparties),
		LineItems:             toDisplayListResponse(m.LineItems),
	}
}

func toDisplayListResponse(l domain.DisplayList) DisplayListResponse {
	label := strings.Join(l.Shown, ", ")
	if l.Overflow > 0 {
		label = fmt.Sprintf("%s +%d more", label, l.Overflow)
	}
	return DisplayListResponse{
		Total:    l.Total,
		Shown:    l.Shown,
		Overflow: l.Overflow,
		Label:    label,
	}
}
