package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/models"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo      portsrepo.AccountRepositoryFacade
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger records.
// The account and counterparty repositories are injected so balance deltas
// run through their row-level update logic inside the same DB transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, counterpartyRepo portsrepo.CounterpartyRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository:   BaseRepository{Pool: pool},
		accountRepo:      accountRepo,
		counterpartyRepo: counterpartyRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toModelTransaction(rec domain.TransactionRecord) models.Transaction {
	return models.Transaction{
		TransactionID:        rec.TransactionID,
		Type:                 models.TransactionType(rec.Type),
		Date:                 rec.Date,
		TotalAmount:          rec.TotalAmount,
		PaidAmount:           rec.PaidAmount,
		RemainingPayment:     rec.RemainingPayment,
		SourceAccountID:      nullString(rec.SourceAccountID),
		DestinationAccountID: nullString(rec.DestinationAccountID),
		AccountPayableID:     nullString(rec.AccountPayableID),
		AccountReceivableID:  nullString(rec.AccountReceivableID),
		ModeOfPayment:        models.PaymentMode(rec.ModeOfPayment),
		Description:          rec.Description,
		UserID:               rec.UserID,
		IdempotencyKey:       nullString(rec.IdempotencyKey),
		AuditFields: models.AuditFields{
			CreatedAt:     rec.CreatedAt,
			CreatedBy:     rec.CreatedBy,
			LastUpdatedAt: rec.LastUpdatedAt,
			LastUpdatedBy: rec.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID:        m.TransactionID,
		Type:                 domain.TransactionType(m.Type),
		Date:                 m.Date,
		TotalAmount:          m.TotalAmount,
		PaidAmount:           m.PaidAmount,
		RemainingPayment:     m.RemainingPayment,
		SourceAccountID:      m.SourceAccountID.String,
		DestinationAccountID: m.DestinationAccountID.String,
		AccountPayableID:     m.AccountPayableID.String,
		AccountReceivableID:  m.AccountReceivableID.String,
		ModeOfPayment:        domain.PaymentMode(m.ModeOfPayment),
		Description:          m.Description,
		UserID:               m.UserID,
		IdempotencyKey:       m.IdempotencyKey.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, type, date, total_amount, paid_amount, remaining_payment, source_account_id, destination_account_id, account_payable_id, account_receivable_id, mode_of_payment, description, user_id, idempotency_key, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Type,
		&m.Date,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.RemainingPayment,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.AccountPayableID,
		&m.AccountReceivableID,
		&m.ModeOfPayment,
		&m.Description,
		&m.UserID,
		&m.IdempotencyKey,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// applyDeltasInTx applies every balance adjustment in deterministic key order
// so two concurrent mutations touching the same rows cannot deadlock.
func (r *PgxTransactionRepository) applyDeltasInTx(ctx context.Context, tx pgx.Tx, rec domain.TransactionRecord, deltas portsrepo.BalanceDeltas) error {
	accountIDs := make([]string, 0, len(deltas.Accounts))
	for id := range deltas.Accounts {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)
	for _, id := range accountIDs {
		if err := r.accountRepo.ApplyBalanceDeltaInTx(ctx, tx, id, deltas.Accounts[id], rec.LastUpdatedBy, rec.LastUpdatedAt); err != nil {
			return err
		}
	}

	counterpartyIDs := make([]string, 0, len(deltas.Counterparties))
	for id := range deltas.Counterparties {
		counterpartyIDs = append(counterpartyIDs, id)
	}
	sort.Strings(counterpartyIDs)
	for _, id := range counterpartyIDs {
		if err := r.counterpartyRepo.ApplyBalanceDeltaInTx(ctx, tx, id, deltas.Counterparties[id], rec.LastUpdatedBy, rec.LastUpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

// SaveTransaction persists a record, its line items, and its balance deltas
// within a single DB transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, rec domain.TransactionRecord, items []domain.LineItem, deltas portsrepo.BalanceDeltas) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	m := toModelTransaction(rec)
	recordQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, recordQuery,
		m.TransactionID,
		m.Type,
		m.Date,
		m.TotalAmount,
		m.PaidAmount,
		m.RemainingPayment,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.AccountPayableID,
		m.AccountReceivableID,
		m.ModeOfPayment,
		m.Description,
		m.UserID,
		m.IdempotencyKey,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation (transaction_id or idempotency_key)
				return fmt.Errorf("transaction %s already exists: %w", m.TransactionID, apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if len(items) > 0 {
		itemQuery := `
			INSERT INTO transaction_line_items (line_item_id, transaction_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5);
		`
		batch := &pgx.Batch{}
		for _, item := range items {
			batch.Queue(itemQuery, item.LineItemID, item.TransactionID, item.ProductID, item.Quantity, item.UnitPrice)
		}
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to insert line item for transaction %s: %w", m.TransactionID, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close line item batch for transaction %s: %w", m.TransactionID, err)
		}
	}

	if err := r.applyDeltasInTx(ctx, tx, rec, deltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a record and applies the reversing deltas within
// a single DB transaction. Line items go first to satisfy the FK.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, deltas portsrepo.BalanceDeltas) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	rec, err := r.findTransactionInTx(ctx, tx, transactionID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_line_items WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete line items for transaction %s: %w", transactionID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyDeltasInTx(ctx, tx, *rec, deltas); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) findTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	m, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	rec := toDomainTransaction(m)
	return &rec, nil
}

// FindTransactionByID retrieves a record by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	rec := toDomainTransaction(m)
	return &rec, nil
}

// FindTransactionByIdempotencyKey retrieves the record created under key.
func (r *PgxTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE idempotency_key = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by idempotency key: %w", err)
	}
	rec := toDomainTransaction(m)
	return &rec, nil
}

// FindLineItemsByTransactionID retrieves sale/purchase line items with the
// product name joined in for display.
func (r *PgxTransactionRepository) FindLineItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.LineItem, error) {
	query := `
		SELECT li.line_item_id, li.transaction_id, li.product_id, p.name, li.quantity, li.unit_price
		FROM transaction_line_items li
		JOIN products p ON p.product_id = li.product_id
		WHERE li.transaction_id = $1
		ORDER BY li.line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.LineItemID, &item.TransactionID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return items, nil
}

// ListTransactions retrieves a filtered page using token-based keyset
// pagination, ordered by date desc with created_at as the tie-breaker.
// Date bounds are calendar inclusive; date_to covers its whole day.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, q portsrepo.ListTransactionsQuery) ([]domain.TransactionRecord, *string, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions`

	conditions := []string{}
	args := []interface{}{}
	addArg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Type != "" {
		conditions = append(conditions, "type = "+addArg(q.Type))
	}
	if q.SourceAccount != "" {
		conditions = append(conditions, "source_account_id = "+addArg(q.SourceAccount))
	}
	if q.CounterpartyID != "" {
		ph := addArg(q.CounterpartyID)
		conditions = append(conditions, "(account_payable_id = "+ph+" OR account_receivable_id = "+ph+")")
	}
	if q.ModeOfPayment != "" {
		conditions = append(conditions, "mode_of_payment = "+addArg(q.ModeOfPayment))
	}
	if q.DateFrom != nil {
		from := q.DateFrom.Truncate(24 * time.Hour)
		conditions = append(conditions, "date >= "+addArg(from))
	}
	if q.DateTo != nil {
		// Exclusive upper bound at the start of the following day.
		to := q.DateTo.Truncate(24 * time.Hour).AddDate(0, 0, 1)
		conditions = append(conditions, "date < "+addArg(to))
	}
	if q.NextToken != nil && *q.NextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*q.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal dates.
		conditions = append(conditions, "(date, created_at) < ("+addArg(lastDate)+", "+addArg(lastCreatedAt)+")")
	}

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC LIMIT " + addArg(fetchLimit) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TransactionRecord, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		records = append(records, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	var nextToken *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextToken = &token
	}
	return records, nextToken, nil
}
