package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Name      string          `json:"name" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// UpdateProductRequest defines the payload for updating a product.
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	IsActive  *bool            `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
}

// CreatePurchaserRequest defines the payload for creating a purchaser.
type CreatePurchaserRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// UpdatePurchaserRequest defines the payload for updating a purchaser.
type UpdatePurchaserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// PurchaserResponse defines the data returned for a purchaser.
type PurchaserResponse struct {
	PurchaserID string `json:"purchaserID"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// CreateJunctionRequest defines the payload for one association pair.
type CreateJunctionRequest struct {
	LeftID  string `json:"leftID" binding:"required"`
	RightID string `json:"rightID" binding:"required"`
}

// BatchJunctionRequest associates one left-side entity with many right-side
// entities in a single all-or-nothing write.
type BatchJunctionRequest struct {
	LeftID   string   `json:"leftID" binding:"required"`
	RightIDs []string `json:"rightIDs" binding:"required,min=1"`
}

// BatchJunctionResponse reports how many rows the batch actually inserted;
// pre-existing pairs are skipped, not errors.
type BatchJunctionResponse struct {
	Requested int `json:"requested"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
}

// ToProductResponse converts a domain.Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitPrice: p.UnitPrice,
		IsActive:  p.IsActive,
	}
}

// ToPurchaserResponse converts a domain.Purchaser.
func ToPurchaserResponse(p *domain.Purchaser) PurchaserResponse {
	return PurchaserResponse{
		PurchaserID: p.PurchaserID,
		Name:        p.Name,
		Phone:       p.Phone,
		IsActive:    p.IsActive,
	}
}
