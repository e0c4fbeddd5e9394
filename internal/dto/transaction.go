package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// CreateSettlementRequest defines the payload for a payment/receipt against a
// counterparty with an outstanding balance.
type CreateSettlementRequest struct {
	CounterpartyID string          `json:"counterpartyID" binding:"required"`
	Role           string          `json:"role" binding:"required,oneof=VENDOR CLIENT"`
	Direction      string          `json:"direction" binding:"required,oneof=payment receipt"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	AccountID      string          `json:"accountID" binding:"required"`
	Date           time.Time       `json:"date" binding:"required"`
	ModeOfPayment  string          `json:"modeOfPayment" binding:"required,oneof=cash check bank_transfer pay_order"`
	Description    string          `json:"description"`
}

// CreateAdvanceRequest defines the payload for an advance payment/receipt.
type CreateAdvanceRequest struct {
	CounterpartyID string          `json:"counterpartyID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	AccountID      string          `json:"accountID" binding:"required"`
	Date           time.Time       `json:"date" binding:"required"`
	ModeOfPayment  string          `json:"modeOfPayment" binding:"required,oneof=cash check bank_transfer pay_order"`
	Description    string          `json:"description"`
}

// CreateInternalRequest defines the payload for deposits, payroll, fixed
// expenses and miscellaneous operations.
type CreateInternalRequest struct {
	Type          string          `json:"type" binding:"required,oneof=deposit payroll fixed_utility fixed_expense miscellaneous"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	AccountID     string          `json:"accountID" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	ModeOfPayment string          `json:"modeOfPayment" binding:"required,oneof=cash check bank_transfer pay_order"`
	Description   string          `json:"description"`
}

// LineItemRequest is one product line on a sale/purchase daily-book record.
type LineItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateDailyBookRequest defines the payload for a sale or purchase record
// with partial payment.
type CreateDailyBookRequest struct {
	Type           string            `json:"type" binding:"required,oneof=sale purchase"`
	CounterpartyID string            `json:"counterpartyID" binding:"required"`
	PaidAmount     decimal.Decimal   `json:"paidAmount"`
	AccountID      string            `json:"accountID"`
	Date           time.Time         `json:"date" binding:"required"`
	ModeOfPayment  string            `json:"modeOfPayment" binding:"required,oneof=cash check bank_transfer pay_order"`
	Description    string            `json:"description"`
	LineItems      []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// ListTransactionsParams carries query-string filters for listing.
type ListTransactionsParams struct {
	Type           string     `form:"type"`
	SourceAccount  string     `form:"source_account_id"`
	CounterpartyID string     `form:"counterparty_id"`
	ModeOfPayment  string     `form:"mode_of_payment"`
	PaymentStatus  string     `form:"payment_status"`
	Search         string     `form:"search"`
	DateFrom       *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo         *time.Time `form:"date_to" time_format:"2006-01-02"`
	Limit          int        `form:"limit"`
	NextToken      *string    `form:"next_token"`
}

// LineItemResponse is one product line on a returned record.
type LineItemResponse struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// TransactionResponse defines the data returned for a ledger record. Amounts
// are fixed to 2 decimal places as strings to survive clients that cannot
// hold decimals.
type TransactionResponse struct {
	TransactionID        string             `json:"transactionID"`
	Type                 string             `json:"type"`
	Date                 time.Time          `json:"date"`
	TotalAmount          string             `json:"totalAmount"`
	PaidAmount           string             `json:"paidAmount"`
	RemainingPayment     string             `json:"remainingPayment"`
	SourceAccountID      *string            `json:"sourceAccountID"`
	DestinationAccountID *string            `json:"destinationAccountID"`
	AccountPayableID     *string            `json:"accountPayableID"`
	AccountReceivableID  *string            `json:"accountReceivableID"`
	ModeOfPayment        string             `json:"modeOfPayment"`
	Description          string             `json:"description"`
	UserID               string             `json:"userID"`
	IsPaid               bool               `json:"isPaid"`
	LineItems            []LineItemResponse `json:"lineItems,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
}

// ListTransactionsResponse wraps a page of records with the next-token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// nullable maps an empty string to JSON null, matching the wire contract of
// foreign-key fields.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToTransactionResponse converts a domain record to its response DTO.
func ToTransactionResponse(t *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		TransactionID:        t.TransactionID,
		Type:                 string(t.Type),
		Date:                 t.Date,
		TotalAmount:          t.TotalAmount.StringFixed(2),
		PaidAmount:           t.PaidAmount.StringFixed(2),
		RemainingPayment:     t.RemainingPayment.StringFixed(2),
		SourceAccountID:      nullable(t.SourceAccountID),
		DestinationAccountID: nullable(t.DestinationAccountID),
		AccountPayableID:     nullable(t.AccountPayableID),
		AccountReceivableID:  nullable(t.AccountReceivableID),
		ModeOfPayment:        string(t.ModeOfPayment),
		Description:          t.Description,
		UserID:               t.UserID,
		IsPaid:               t.IsPaid(),
		CreatedAt:            t.CreatedAt,
	}
}

// ToLineItemResponses converts domain line items.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = LineItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return out
}
