package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/utils"
)

// CreateAccountRequest defines the payload for creating an internal account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	AccountType    string          `json:"accountType" binding:"required,oneof=CASH BANK"`
	AccountNumber  string          `json:"accountNumber"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateAccountRequest defines the payload for updating account details.
// Balance is deliberately absent: it moves only by applying transactions.
type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	AccountNumber *string `json:"accountNumber"`
	IsActive      *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string          `json:"accountID"`
	Name             string          `json:"name"`
	AccountType      string          `json:"accountType"`
	AccountNumber    string          `json:"accountNumber,omitempty"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balanceFormatted"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ListAccountsResponse wraps the account collection.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        a.AccountID,
		Name:             a.Name,
		AccountType:      string(a.AccountType),
		AccountNumber:    a.AccountNumber,
		Balance:          a.Balance.Round(2),
		BalanceFormatted: utils.FormatPKR(a.Balance),
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
	}
}

// ToListAccountsResponse converts a slice of accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	resp := ListAccountsResponse{Accounts: make([]AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
