package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/models"
)

type PgxPurchaserRepository struct {
	BaseRepository
}

// newPgxPurchaserRepository creates a new repository for purchaser data.
func newPgxPurchaserRepository(pool *pgxpool.Pool) portsrepo.PurchaserRepositoryFacade {
	return &PgxPurchaserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchaserRepositoryFacade = (*PgxPurchaserRepository)(nil)

func toDomainPurchaser(m models.Purchaser) domain.Purchaser {
	return domain.Purchaser{
		PurchaserID: m.PurchaserID,
		Name:        m.Name,
		Phone:       m.Phone,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const purchaserColumns = `purchaser_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchaser(row pgx.Row) (models.Purchaser, error) {
	var m models.Purchaser
	err := row.Scan(
		&m.PurchaserID,
		&m.Name,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePurchaser persists a new purchaser.
func (r *PgxPurchaserRepository) SavePurchaser(ctx context.Context, p domain.Purchaser) error {
	query := `
		INSERT INTO purchasers (` + purchaserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		p.PurchaserID,
		p.Name,
		p.Phone,
		p.IsActive,
		p.CreatedAt,
		p.CreatedBy,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("purchaser with ID %s already exists: %w", p.PurchaserID, apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save purchaser %s: %w", p.PurchaserID, err)
	}
	return nil
}

// FindPurchaserByID retrieves a purchaser by its ID.
func (r *PgxPurchaserRepository) FindPurchaserByID(ctx context.Context, purchaserID string) (*domain.Purchaser, error) {
	query := `SELECT ` + purchaserColumns + ` FROM purchasers WHERE purchaser_id = $1;`
	m, err := scanPurchaser(r.Pool.QueryRow(ctx, query, purchaserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchaser by ID %s: %w", purchaserID, err)
	}
	p := toDomainPurchaser(m)
	return &p, nil
}

// ListPurchasers retrieves purchasers ordered by name.
func (r *PgxPurchaserRepository) ListPurchasers(ctx context.Context, includeInactive bool) ([]domain.Purchaser, error) {
	query := `SELECT ` + purchaserColumns + ` FROM purchasers`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchasers: %w", err)
	}
	defer rows.Close()

	purchasers := []domain.Purchaser{}
	for rows.Next() {
		m, err := scanPurchaser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchaser row: %w", err)
		}
		purchasers = append(purchasers, toDomainPurchaser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchaser rows: %w", err)
	}
	return purchasers, nil
}

// UpdatePurchaser updates the editable fields of a purchaser.
func (r *PgxPurchaserRepository) UpdatePurchaser(ctx context.Context, p domain.Purchaser) error {
	query := `
		UPDATE purchasers
		SET name = $2, phone = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE purchaser_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		p.PurchaserID,
		p.Name,
		p.Phone,
		p.IsActive,
		p.LastUpdatedAt,
		p.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchaser %s: %w", p.PurchaserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivatePurchaser marks a purchaser as inactive.
func (r *PgxPurchaserRepository) DeactivatePurchaser(ctx context.Context, purchaserID string, userID string, now time.Time) error {
	query := `
		UPDATE purchasers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE purchaser_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, purchaserID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate purchaser %s: %w", purchaserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
