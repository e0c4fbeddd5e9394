package domain

import "github.com/shopspring/decimal"

// Product is a purchasable/sellable line item.
type Product struct {
	ProductID string          `json:"productID"` // Primary key (UUID)
	Name      string          `json:"name"`
	Unit      string          `json:"unit"` // e.g. "kg", "bag", "piece"
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// Purchaser is a buying agent who procures on behalf of the business.
type Purchaser struct {
	PurchaserID string `json:"purchaserID"` // Primary key (UUID)
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// JunctionKind names a many-to-many association table. One row per pair,
// no payload beyond the two foreign keys.
type JunctionKind string

const (
	ProductVendor    JunctionKind = "product_vendor"
	ProductPurchaser JunctionKind = "product_purchaser"
	PurchaserVendor  JunctionKind = "purchaser_vendor"
)

// JunctionPair is a single association row between two entities.
type JunctionPair struct {
	Kind    JunctionKind `json:"kind"`
	LeftID  string       `json:"leftID"`  // product_id or purchaser_id depending on kind
	RightID string       `json:"rightID"` // vendor_id or purchaser_id depending on kind
}

// LineItem is a product reference embedded in a sale/purchase record.
type LineItem struct {
	LineItemID    string          `json:"lineItemID"`
	TransactionID string          `json:"transactionID"`
	ProductID     string          `json:"productID"`
	ProductName   string          `json:"productName"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}
