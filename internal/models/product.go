package models

import "github.com/shopspring/decimal"

// Product is the products table row.
type Product struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Unit      string          `db:"unit"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}

// Purchaser is the purchasers table row.
type Purchaser struct {
	PurchaserID string `db:"purchaser_id"`
	Name        string `db:"name"`
	Phone       string `db:"phone"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
