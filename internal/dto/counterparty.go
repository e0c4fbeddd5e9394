package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/utils"
)

// CreateCounterpartyRequest defines the payload for creating a payable or
// receivable. The role comes from the endpoint, not the body.
type CreateCounterpartyRequest struct {
	Name           string          `json:"name" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
}

// UpdateCounterpartyRequest defines the payload for updating counterparty
// details. Balance is absent: it moves only by applying transactions.
type UpdateCounterpartyRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// CounterpartyResponse defines the data returned for a payable/receivable.
type CounterpartyResponse struct {
	CounterpartyID   string          `json:"counterpartyID"`
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	Balance          decimal.Decimal `json:"balance"`
	BalanceFormatted string          `json:"balanceFormatted"`
	Phone            string          `json:"phone,omitempty"`
	Address          string          `json:"address,omitempty"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ListCounterpartiesResponse wraps the counterparty collection.
type ListCounterpartiesResponse struct {
	Counterparties []CounterpartyResponse `json:"counterparties"`
}

// ToCounterpartyResponse converts a domain.Counterparty to its response DTO.
func ToCounterpartyResponse(c *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID:   c.CounterpartyID,
		Name:             c.Name,
		Role:             string(c.Role),
		Balance:          c.Balance.Round(2),
		BalanceFormatted: utils.FormatPKR(c.Balance),
		Phone:            c.Phone,
		Address:          c.Address,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
	}
}

// ToListCounterpartiesResponse converts a slice of counterparties.
func ToListCounterpartiesResponse(cps []domain.Counterparty) ListCounterpartiesResponse {
	resp := ListCounterpartiesResponse{Counterparties: make([]CounterpartyResponse, len(cps))}
	for i := range cps {
		resp.Counterparties[i] = ToCounterpartyResponse(&cps[i])
	}
	return resp
}
