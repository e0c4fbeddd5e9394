package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// transactionService implements the TransactionSvcFacade interface. Every
// mutation computes its balance deltas once and hands them to the repository,
// which applies record and deltas in a single database transaction.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
	productRepo     portsrepo.ProductRepositoryFacade
	counterpartySvc portssvc.CounterpartySvcFacade
	bus             *events.InvalidationBus
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	productRepo portsrepo.ProductRepositoryFacade,
	counterpartySvc portssvc.CounterpartySvcFacade,
	bus *events.InvalidationBus,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		productRepo:     productRepo,
		counterpartySvc: counterpartySvc,
		bus:             bus,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// replayIdempotent returns the previously created record when the key was
// already used, nil when the key is fresh or absent.
func (s *transactionService) replayIdempotent(ctx context.Context, key string) (*domain.TransactionRecord, error) {
	if key == "" {
		return nil, nil
	}
	rec, err := s.transactionRepo.FindTransactionByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	s.LogInfo(ctx, "Idempotency key replayed, returning existing record",
		slog.String("transaction_id", rec.TransactionID))
	return rec, nil
}

// requireActiveAccount validates that the referenced account exists and is
// active before money is moved against it.
func (s *transactionService) requireActiveAccount(ctx context.Context, accountID string) error {
	if accountID == "" {
		return apperrors.ErrMissingAccount
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s", apperrors.ErrMissingAccount, accountID)
		}
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// forwardDeltas derives the balance adjustments a record implies when
// applied. Deletion uses the negation of the same derivation, so creation
// and reversal cannot drift apart.
func forwardDeltas(rec domain.TransactionRecord) portsrepo.BalanceDeltas {
	deltas := portsrepo.BalanceDeltas{
		Accounts:       map[string]decimal.Decimal{},
		Counterparties: map[string]decimal.Decimal{},
	}

	if rec.SourceAccountID != "" {
		deltas.Accounts[rec.SourceAccountID] = rec.PaidAmount.Neg()
	}
	if rec.DestinationAccountID != "" {
		deltas.Accounts[rec.DestinationAccountID] = rec.PaidAmount
	}

	counterpartyID := rec.AccountPayableID
	if counterpartyID == "" {
		counterpartyID = rec.AccountReceivableID
	}

	switch rec.Type {
	case domain.PayAble, domain.ReceiveAble:
		// Natural-direction settlement reduces the outstanding balance.
		deltas.Counterparties[counterpartyID] = rec.PaidAmount.Neg()
	case domain.ReceiveAbleVendor, domain.PayAbleClient:
		// Reversal flow pushes the balance back up.
		deltas.Counterparties[counterpartyID] = rec.PaidAmount
	case domain.AdvanceSalePayment:
		// An advance settles ahead of any debt, driving the balance negative.
		deltas.Counterparties[counterpartyID] = rec.PaidAmount.Neg()
	case domain.Sale, domain.Purchase:
		// The unpaid part of a daily-book record becomes new outstanding debt.
		if counterpartyID != "" && !rec.RemainingPayment.IsZero() {
			deltas.Counterparties[counterpartyID] = rec.RemainingPayment
		}
	}

	return deltas
}

func negate(d portsrepo.BalanceDeltas) portsrepo.BalanceDeltas {
	out := portsrepo.BalanceDeltas{
		Accounts:       make(map[string]decimal.Decimal, len(d.Accounts)),
		Counterparties: make(map[string]decimal.Decimal, len(d.Counterparties)),
	}
	for id, v := range d.Accounts {
		out.Accounts[id] = v.Neg()
	}
	for id, v := range d.Counterparties {
		out.Counterparties[id] = v.Neg()
	}
	return out
}

func (s *transactionService) persist(ctx context.Context, rec domain.TransactionRecord, items []domain.LineItem, userID string) (*domain.TransactionRecord, error) {
	now := time.Now()
	rec.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.transactionRepo.SaveTransaction(ctx, rec, items, forwardDeltas(rec)); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", rec.TransactionID),
			slog.String("type", string(rec.Type)))
		return nil, err
	}

	s.bus.Invalidate(events.ReadModelAccounts, events.ReadModelCounterparties, events.ReadModelSummary)
	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", rec.TransactionID),
		slog.String("type", string(rec.Type)))
	return &rec, nil
}

func (s *transactionService) CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error) {
	if existing, err := s.replayIdempotent(ctx, idempotencyKey); existing != nil || err != nil {
		return existing, err
	}

	if err := s.requireActiveAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	role := domain.CounterpartyRole(req.Role)
	res, err := s.counterpartySvc.ResolveForSettlement(ctx, req.CounterpartyID, role)
	if err != nil {
		return nil, err
	}

	rec, err := ledger.BuildTransaction(ledger.BuildInput{
		Resolution:  *res,
		Amount:      req.Amount,
		Direction:   ledger.Direction(req.Direction),
		AccountID:   req.AccountID,
		Date:        req.Date,
		Mode:        domain.PaymentMode(req.ModeOfPayment),
		Description: req.Description,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}
	rec.IdempotencyKey = idempotencyKey

	return s.persist(ctx, rec, nil, userID)
}

func (s *transactionService) CreateAdvance(ctx context.Context, req dto.CreateAdvanceRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error) {
	if existing, err := s.replayIdempotent(ctx, idempotencyKey); existing != nil || err != nil {
		return existing, err
	}

	if err := s.requireActiveAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	entity, err := s.counterpartySvc.GetCounterpartyByID(ctx, req.CounterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrEntityNotFound
		}
		return nil, err
	}

	rec, err := ledger.BuildAdvance(*entity, req.Amount, req.AccountID, req.Date, domain.PaymentMode(req.ModeOfPayment), req.Description, userID)
	if err != nil {
		return nil, err
	}
	rec.IdempotencyKey = idempotencyKey

	return s.persist(ctx, rec, nil, userID)
}

func (s *transactionService) CreateInternal(ctx context.Context, req dto.CreateInternalRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error) {
	if existing, err := s.replayIdempotent(ctx, idempotencyKey); existing != nil || err != nil {
		return existing, err
	}

	if err := s.requireActiveAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	rec, err := ledger.BuildInternal(domain.TransactionType(req.Type), req.Amount, req.AccountID, req.Date, domain.PaymentMode(req.ModeOfPayment), req.Description, userID)
	if err != nil {
		return nil, err
	}
	rec.IdempotencyKey = idempotencyKey

	return s.persist(ctx, rec, nil, userID)
}

func (s *transactionService) CreateDailyBook(ctx context.Context, req dto.CreateDailyBookRequest, userID string, idempotencyKey string) (*domain.TransactionRecord, error) {
	if existing, err := s.replayIdempotent(ctx, idempotencyKey); existing != nil || err != nil {
		return existing, err
	}

	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.PaidAmount)
	}
	// An unpaid record needs no account; any payment does.
	if req.PaidAmount.IsPositive() {
		if err := s.requireActiveAccount(ctx, req.AccountID); err != nil {
			return nil, err
		}
	}

	role := domain.RoleClient
	txnType := domain.Sale
	if req.Type == string(domain.Purchase) {
		role = domain.RoleVendor
		txnType = domain.Purchase
	}

	entity, err := s.counterpartySvc.GetCounterpartyByID(ctx, req.CounterpartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrEntityNotFound
		}
		return nil, err
	}
	if entity.Role != role {
		return nil, fmt.Errorf("%w: %s is not a %s", apperrors.ErrEntityNotFound, req.CounterpartyID, role.Label())
	}

	transactionID := uuid.NewString()
	items, total, err := s.buildLineItems(ctx, transactionID, req.LineItems)
	if err != nil {
		return nil, err
	}

	paid := req.PaidAmount.Round(2)
	if paid.GreaterThan(total) {
		return nil, fmt.Errorf("%w: paid %s exceeds total %s", apperrors.ErrInvalidAmount, paid, total)
	}

	rec := domain.TransactionRecord{
		TransactionID:    transactionID,
		Type:             txnType,
		Date:             req.Date,
		TotalAmount:      total,
		PaidAmount:       paid,
		RemainingPayment: total.Sub(paid),
		ModeOfPayment:    domain.PaymentMode(req.ModeOfPayment),
		Description:      req.Description,
		UserID:           userID,
		IdempotencyKey:   idempotencyKey,
	}
	switch role {
	case domain.RoleVendor:
		rec.AccountPayableID = entity.CounterpartyID
		if paid.IsPositive() {
			rec.SourceAccountID = req.AccountID
		}
	case domain.RoleClient:
		rec.AccountReceivableID = entity.CounterpartyID
		if paid.IsPositive() {
			rec.DestinationAccountID = req.AccountID
		}
	}

	return s.persist(ctx, rec, items, userID)
}

// buildLineItems materializes the request lines against the product catalog
// and returns them with the summed total.
func (s *transactionService) buildLineItems(ctx context.Context, transactionID string, reqItems []dto.LineItemRequest) ([]domain.LineItem, decimal.Decimal, error) {
	productIDs := make([]string, len(reqItems))
	for i, it := range reqItems {
		productIDs[i] = it.ProductID
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load products for line items: %w", err)
	}

	items := make([]domain.LineItem, len(reqItems))
	total := decimal.Zero
	for i, it := range reqItems {
		product, ok := products[it.ProductID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: product %s", apperrors.ErrEntityNotFound, it.ProductID)
		}
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: line item for product %s", apperrors.ErrInvalidAmount, it.ProductID)
		}
		items[i] = domain.LineItem{
			LineItemID:    uuid.NewString(),
			TransactionID: transactionID,
			ProductID:     it.ProductID,
			ProductName:   product.Name,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
		}
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return items, total.Round(2), nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, []domain.LineItem, error) {
	rec, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, nil, err
	}

	var items []domain.LineItem
	if rec.Type == domain.Sale || rec.Type == domain.Purchase {
		items, err = s.transactionRepo.FindLineItemsByTransactionID(ctx, transactionID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load line items",
				slog.String("transaction_id", transactionID))
			return nil, nil, err
		}
	}
	return rec, items, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.TransactionRecord, *string, error) {
	recs, nextToken, err := s.transactionRepo.ListTransactions(ctx, portsrepo.ListTransactionsQuery{
		Type:           params.Type,
		SourceAccount:  params.SourceAccount,
		CounterpartyID: params.CounterpartyID,
		ModeOfPayment:  params.ModeOfPayment,
		DateFrom:       params.DateFrom,
		DateTo:         params.DateTo,
		Limit:          params.Limit,
		NextToken:      params.NextToken,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, err
	}

	// Search and payment status are page-local refinements; everything else
	// was already constrained by the store.
	if params.Search == "" && params.PaymentStatus == "" {
		return recs, nextToken, nil
	}

	items := make([]ledger.FilterItem, len(recs))
	for i, rec := range recs {
		items[i] = ledger.FilterItem{
			Record:           rec,
			CounterpartyName: s.counterpartyName(ctx, rec),
		}
	}
	filtered := ledger.Apply(items, ledger.Criteria{
		Search:        params.Search,
		PaymentStatus: params.PaymentStatus,
	})

	out := make([]domain.TransactionRecord, len(filtered))
	for i, it := range filtered {
		out[i] = it.Record
	}
	return out, nextToken, nil
}

func (s *transactionService) counterpartyName(ctx context.Context, rec domain.TransactionRecord) string {
	counterpartyID := rec.AccountPayableID
	if counterpartyID == "" {
		counterpartyID = rec.AccountReceivableID
	}
	if counterpartyID == "" {
		return ""
	}
	cp, err := s.counterpartySvc.GetCounterpartyByID(ctx, counterpartyID)
	if err != nil {
		return ""
	}
	return cp.Name
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, userID string) error {
	rec, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for deletion",
				slog.String("transaction_id", transactionID))
		}
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, negate(forwardDeltas(*rec))); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}

	s.bus.Invalidate(events.ReadModelAccounts, events.ReadModelCounterparties, events.ReadModelSummary)
	s.LogInfo(ctx, "Transaction deleted successfully",
		slog.String("transaction_id", transactionID),
		slog.String("deleted_by", userID))
	return nil
}
