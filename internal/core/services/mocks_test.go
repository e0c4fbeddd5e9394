package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Error(0)
}

// --- Mock CounterpartyRepository ---

type MockCounterpartyRepository struct {
	mock.Mock
}

var _ portsrepo.CounterpartyRepositoryFacade = (*MockCounterpartyRepository)(nil)

func (m *MockCounterpartyRepository) FindCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) ListCounterparties(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyRepository) SaveCounterparty(ctx context.Context, cp domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) UpdateCounterparty(ctx context.Context, cp domain.Counterparty) error {
	args := m.Called(ctx, cp)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string, now time.Time) error {
	args := m.Called(ctx, counterpartyID, userID, now)
	return args.Error(0)
}

func (m *MockCounterpartyRepository) ApplyBalanceDeltaInTx(ctx context.Context, tx pgx.Tx, counterpartyID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, counterpartyID, delta, userID, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, q portsrepo.ListTransactionsQuery) ([]domain.TransactionRecord, *string, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.TransactionRecord), nextToken, args.Error(2)
}

func (m *MockTransactionRepository) FindLineItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, rec domain.TransactionRecord, items []domain.LineItem, deltas portsrepo.BalanceDeltas) error {
	args := m.Called(ctx, rec, items, deltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, deltas portsrepo.BalanceDeltas) error {
	args := m.Called(ctx, transactionID, deltas)
	return args.Error(0)
}

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, p domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, includeInactive bool) ([]domain.Product, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

// --- Mock PurchaserRepository ---

type MockPurchaserRepository struct {
	mock.Mock
}

var _ portsrepo.PurchaserRepositoryFacade = (*MockPurchaserRepository)(nil)

func (m *MockPurchaserRepository) SavePurchaser(ctx context.Context, p domain.Purchaser) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaserRepository) FindPurchaserByID(ctx context.Context, purchaserID string) (*domain.Purchaser, error) {
	args := m.Called(ctx, purchaserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchaser), args.Error(1)
}

func (m *MockPurchaserRepository) ListPurchasers(ctx context.Context, includeInactive bool) ([]domain.Purchaser, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchaser), args.Error(1)
}

func (m *MockPurchaserRepository) UpdatePurchaser(ctx context.Context, p domain.Purchaser) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaserRepository) DeactivatePurchaser(ctx context.Context, purchaserID string, userID string, now time.Time) error {
	args := m.Called(ctx, purchaserID, userID, now)
	return args.Error(0)
}

// --- Mock JunctionRepository ---

type MockJunctionRepository struct {
	mock.Mock
}

var _ portsrepo.JunctionRepositoryFacade = (*MockJunctionRepository)(nil)

func (m *MockJunctionRepository) SaveJunction(ctx context.Context, pair domain.JunctionPair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockJunctionRepository) SaveJunctionsBatch(ctx context.Context, pairs []domain.JunctionPair) (int, error) {
	args := m.Called(ctx, pairs)
	return args.Int(0), args.Error(1)
}

func (m *MockJunctionRepository) DeleteJunction(ctx context.Context, pair domain.JunctionPair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockJunctionRepository) ListJunctions(ctx context.Context, kind domain.JunctionKind, leftID string) ([]domain.JunctionPair, error) {
	args := m.Called(ctx, kind, leftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JunctionPair), args.Error(1)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	args := m.Called(ctx, userID, deletedBy, now)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

// --- Mock CounterpartyService (as used by TransactionService) ---

type MockCounterpartyService struct {
	mock.Mock
}

var _ portssvc.CounterpartySvcFacade = (*MockCounterpartyService)(nil)

func (m *MockCounterpartyService) GetCounterpartyByID(ctx context.Context, counterpartyID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, counterpartyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) ListCounterparties(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) ListSettlementCandidates(ctx context.Context, role domain.CounterpartyRole) ([]domain.Counterparty, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) ResolveForSettlement(ctx context.Context, counterpartyID string, role domain.CounterpartyRole) (*ledger.Resolution, error) {
	args := m.Called(ctx, counterpartyID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Resolution), args.Error(1)
}

func (m *MockCounterpartyService) CreateCounterparty(ctx context.Context, role domain.CounterpartyRole, req dto.CreateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, role, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) UpdateCounterparty(ctx context.Context, counterpartyID string, req dto.UpdateCounterpartyRequest, userID string) (*domain.Counterparty, error) {
	args := m.Called(ctx, counterpartyID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counterparty), args.Error(1)
}

func (m *MockCounterpartyService) DeactivateCounterparty(ctx context.Context, counterpartyID string, userID string) error {
	args := m.Called(ctx, counterpartyID, userID)
	return args.Error(0)
}
