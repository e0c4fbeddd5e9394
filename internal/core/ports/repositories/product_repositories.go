package repositories

import (
	"context"
	"time"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
)

// ProductRepositoryFacade defines persistence for products.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, p domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
	ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error
}

// PurchaserRepositoryFacade defines persistence for purchasers.
type PurchaserRepositoryFacade interface {
	SavePurchaser(ctx context.Context, p domain.Purchaser) error
	FindPurchaserByID(ctx context.Context, purchaserID string) (*domain.Purchaser, error)
	ListPurchasers(ctx context.Context, includeInactive bool) ([]domain.Purchaser, error)
	UpdatePurchaser(ctx context.Context, p domain.Purchaser) error
	DeactivatePurchaser(ctx context.Context, purchaserID string, userID string, now time.Time) error
}

// JunctionRepositoryFacade defines persistence for many-to-many association
// rows. SaveJunction reports apperrors.ErrDuplicateRelationship on a
// uniqueness conflict; SaveJunctionsBatch is all-or-nothing inside one
// database transaction, with per-pair conflicts skipped via the database's
// conflict clause rather than failing the batch.
type JunctionRepositoryFacade interface {
	SaveJunction(ctx context.Context, pair domain.JunctionPair) error
	SaveJunctionsBatch(ctx context.Context, pairs []domain.JunctionPair) (inserted int, err error)
	DeleteJunction(ctx context.Context, pair domain.JunctionPair) error
	ListJunctions(ctx context.Context, kind domain.JunctionKind, leftID string) ([]domain.JunctionPair, error)
}
