package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/models"
)

type PgxCounterpartyRepository struct {
	BaseRepository
}

// newPgxCounterpartyRepository creates a new repository for payables and
// receivables. Both roles share the counterparties table; the role column
// keeps the two endpoint families apart.
func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &PgxCounterpartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CounterpartyRepositoryFacade = (*PgxCounterpartyRepository)(nil)

func toModelCounterparty(cp domain.Counterparty) models.Counterparty {
	return models.Counterparty{
		CounterpartyID: cp.CounterpartyID,
		Name:           cp.Name,
		Role:           models.CounterpartyRole(cp.Role),
		Balance:        cp.Balance,
		Phone:          cp.Phone,
		Address:        cp.Address,
		IsActive:       cp.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     cp.CreatedAt,
			CreatedBy:     cp.CreatedBy,
			LastUpdatedAt: cp.LastUpdatedAt,
			LastUpdatedBy: cp.LastUpdatedBy,
		},
	}
}

func toDomainCounterparty(m models.Counterparty) domain.Counterparty {
	return domain.Counterparty{
		CounterpartyID: m.CounterpartyID,
		Name:           m.Name,
		Role:           domain.CounterpartyRole(m.Role),
		Balance:        m.Balance,
		Phone:          m.Phone,
		Address:        m.Address,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const counterpartyColumns = `counterparty_id, name, role, balance, phone, address, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCounterparty(row pgx.Row) (models.Counterparty, error) {
	var m models.Counterparty
	err := row.Scan(
		&m.CounterpartyID,
		&m.Name,
		&m.Role,
		&m.Balance,
		&m.Phone,
		&m.Address,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCounterparty persists a new counterparty.
func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	m := toModelCounterparty(cp)
	query := `
		INSERT INTO counterparties (` + counterpartyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID,
		m.Name,
		m.Role,
		m.Balance,
		m.Phone,
		m.Address,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("counterparty with ID %s already exists: %w", m.CounterpartyID, apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save counterparty %s: %w", m.CounterpartyID, err)
	}
	return nil
}

// FindCounterpartyByID retrieves a counterparty by its ID regardless of role.
func (r *PgxCounterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	query := `SELECT ` + counterpartyColumns + ` FROM counterparties WHERE counterparty_id = $1;`
	m, err := scanCounterparty(r.Pool.QueryRow(ctx, query, counterpartyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find counterparty by ID %s: %w", counterpartyID, err)
	}
	cp := toDomainCounterparty(m)
	return &cp, nil
}

// ListCounterparties retrieves all active counterparties for a role, ordered
// by name.
func (r *PgxCounterpartyRepository) ListCounterparties(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error) {
	query := `
		SELECT ` + counterpartyColumns + `
		FROM counterparties
		WHERE is_active = TRUE AND role = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query counterparties for role %s: %w", role, err)
	}
	defer rows.Close()

	cps := []domain.Counterparty{}
	for rows.Next() {
		m, err := scanCounterparty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counterparty row: %w", err)
		}
		cps = append(cps, toDomainCounterparty(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counterparty rows: %w", err)
	}
	return cps, nil
}

// UpdateCounterparty updates contact details and the active flag. Balance and
// role are not editable through this path.
func (r *PgxCounterpartyRepository) UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error {
	query := `
		UPDATE counterparties
		SET name = $2, phone = $3, address = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE counterparty_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		cp.CounterpartyID,
		cp.Name,
		cp.Phone,
		cp.Address,
		cp.IsActive,
		cp.LastUpdatedAt,
		cp.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update counterparty %s: %w", cp.CounterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCounterparty marks a counterparty as inactive.
func (r *PgxCounterpartyRepository) DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error {
	query := `
		UPDATE counterparties
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE counterparty_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, counterpartyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate counterparty %s: %w", counterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyBalanceDeltaInTx adjusts a counterparty balance within the caller's
// transaction.
func (r *PgxCounterpartyRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, counterpartyID string, delta decimal.Decimal, userID string, now time.Time) error {
	if delta.IsZero() {
		return nil
	}
	query := `
		UPDATE counterparties
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE counterparty_id = $1;
	`
	tag, err := tx.Exec(ctx, query, counterpartyID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for counterparty %s: %w", counterpartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: counterparty %s not found during balance update", apperrors.ErrNotFound, counterpartyID)
	}
	return nil
}
