package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
)

type PgxJunctionRepository struct {
	BaseRepository
}

// newPgxJunctionRepository creates a new repository for the three
// many-to-many association tables.
func newPgxJunctionRepository(pool *pgxpool.Pool) portsrepo.JunctionRepositoryFacade {
	return &PgxJunctionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JunctionRepositoryFacade = (*PgxJunctionRepository)(nil)

// junctionTable maps an association kind to its table and column names. The
// column names are compile-time constants, never user input, so string
// concatenation into SQL below is safe.
func junctionTable(kind domain.JunctionKind) (table, leftCol, rightCol string, err error) {
	switch kind {
	case domain.ProductVendor:
		return "product_vendors", "product_id", "vendor_id", nil
	case domain.ProductPurchaser:
		return "product_purchasers", "product_id", "purchaser_id", nil
	case domain.PurchaserVendor:
		return "purchaser_vendors", "purchaser_id", "vendor_id", nil
	}
	return "", "", "", fmt.Errorf("%w: unknown association kind %q", apperrors.ErrValidation, kind)
}

// SaveJunction persists a single association pair. A uniqueness conflict maps
// to ErrDuplicateRelationship so the service layer can report it as such.
func (r *PgxJunctionRepository) SaveJunction(ctx context.Context, pair domain.JunctionPair) error {
	table, leftCol, rightCol, err := junctionTable(pair.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2);`, table, leftCol, rightCol)
	_, err = r.Pool.Exec(ctx, query, pair.LeftID, pair.RightID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("association %s -> %s already exists: %w", pair.LeftID, pair.RightID, apperrors.ErrDuplicateRelationship)
			}
		}
		return fmt.Errorf("failed to save %s association: %w", pair.Kind, err)
	}
	return nil
}

// SaveJunctionsBatch inserts all pairs within one DB transaction. Pairs that
// already exist are skipped via ON CONFLICT DO NOTHING; any other failure
// rolls back the whole batch. Returns the number of rows actually inserted.
func (r *PgxJunctionRepository) SaveJunctionsBatch(ctx context.Context, pairs []domain.JunctionPair) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, pair := range pairs {
		table, leftCol, rightCol, err := junctionTable(pair.Kind)
		if err != nil {
			return 0, err
		}
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, table, leftCol, rightCol)
		batch.Queue(query, pair.LeftID, pair.RightID)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to insert association %s -> %s: %w", pairs[i].LeftID, pairs[i].RightID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close association batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// DeleteJunction removes a single association pair.
func (r *PgxJunctionRepository) DeleteJunction(ctx context.Context, pair domain.JunctionPair) error {
	table, leftCol, rightCol, err := junctionTable(pair.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2;`, table, leftCol, rightCol)
	tag, err := r.Pool.Exec(ctx, query, pair.LeftID, pair.RightID)
	if err != nil {
		return fmt.Errorf("failed to delete %s association: %w", pair.Kind, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListJunctions retrieves association pairs of a kind. An empty leftID lists
// every pair of that kind.
func (r *PgxJunctionRepository) ListJunctions(ctx context.Context, kind domain.JunctionKind, leftID string) ([]domain.JunctionPair, error) {
	table, leftCol, rightCol, err := junctionTable(kind)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if leftID != "" {
		query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s;`, leftCol, rightCol, table, leftCol, rightCol)
		rows, err = r.Pool.Query(ctx, query, leftID)
	} else {
		query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s, %s;`, leftCol, rightCol, table, leftCol, rightCol)
		rows, err = r.Pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s associations: %w", kind, err)
	}
	defer rows.Close()

	pairs := []domain.JunctionPair{}
	for rows.Next() {
		pair := domain.JunctionPair{Kind: kind}
		if err := rows.Scan(&pair.LeftID, &pair.RightID); err != nil {
			return nil, fmt.Errorf("failed to scan association row: %w", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating association rows: %w", err)
	}
	return pairs, nil
}
