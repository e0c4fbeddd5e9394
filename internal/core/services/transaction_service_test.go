package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockProductRepo *MockProductRepository
	mockCpSvc       *MockCounterpartyService
	bus             *events.InvalidationBus
	service         portssvc.TransactionSvcFacade

	userID    string
	accountID string
	vendorID  string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCpSvc = new(MockCounterpartyService)
	suite.bus = events.NewInvalidationBus()
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockProductRepo,
		suite.mockCpSvc,
		suite.bus,
	)

	suite.userID = uuid.NewString()
	suite.accountID = uuid.NewString()
	suite.vendorID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) activeAccount() *domain.Account {
	return &domain.Account{
		AccountID:   suite.accountID,
		Name:        "Till",
		AccountType: domain.Cash,
		Balance:     decimal.NewFromInt(100000),
		IsActive:    true,
	}
}

func (suite *TransactionServiceTestSuite) vendorResolution(balance int64) *ledger.Resolution {
	entity := domain.Counterparty{
		CounterpartyID: suite.vendorID,
		Name:           "Flour Mills",
		Role:           domain.RoleVendor,
		Balance:        decimal.NewFromInt(balance),
		IsActive:       true,
	}
	return &ledger.Resolution{
		Entity:         entity,
		CurrentBalance: entity.Balance,
		Classification: domain.RoleVendor,
	}
}

func (suite *TransactionServiceTestSuite) TestCreateSettlement_VendorPayment() {
	ctx := context.Background()
	req := dto.CreateSettlementRequest{
		CounterpartyID: suite.vendorID,
		Role:           "VENDOR",
		Direction:      "payment",
		Amount:         decimal.NewFromInt(2000),
		AccountID:      suite.accountID,
		Date:           time.Now(),
		ModeOfPayment:  "cash",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockCpSvc.On("ResolveForSettlement", ctx, suite.vendorID, domain.RoleVendor).Return(suite.vendorResolution(5000), nil).Once()

	var savedRec domain.TransactionRecord
	var savedDeltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedRec = args.Get(1).(domain.TransactionRecord)
			savedDeltas = args.Get(3).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	rec, err := suite.service.CreateSettlement(ctx, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.Equal(domain.PayAble, rec.Type)
	suite.Equal("5000", rec.TotalAmount.String())
	suite.Equal("2000", rec.PaidAmount.String())
	suite.Equal("3000", rec.RemainingPayment.String())
	suite.Equal(suite.accountID, rec.SourceAccountID)
	suite.Equal(suite.vendorID, rec.AccountPayableID)

	// Balance deltas ride on the same store call as the record.
	suite.True(savedDeltas.Accounts[suite.accountID].Equal(decimal.NewFromInt(-2000)))
	suite.True(savedDeltas.Counterparties[suite.vendorID].Equal(decimal.NewFromInt(-2000)))
	suite.Equal(rec.TransactionID, savedRec.TransactionID)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockCpSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateSettlement_ReversalRaisesBalance() {
	ctx := context.Background()
	req := dto.CreateSettlementRequest{
		CounterpartyID: suite.vendorID,
		Role:           "VENDOR",
		Direction:      "receipt",
		Amount:         decimal.NewFromInt(500),
		AccountID:      suite.accountID,
		Date:           time.Now(),
		ModeOfPayment:  "bank_transfer",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockCpSvc.On("ResolveForSettlement", ctx, suite.vendorID, domain.RoleVendor).Return(suite.vendorResolution(1000), nil).Once()

	var savedDeltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(3).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	rec, err := suite.service.CreateSettlement(ctx, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.ReceiveAbleVendor, rec.Type)
	suite.Equal("1500", rec.RemainingPayment.String())
	suite.Equal(suite.accountID, rec.DestinationAccountID)
	suite.True(savedDeltas.Accounts[suite.accountID].Equal(decimal.NewFromInt(500)))
	suite.True(savedDeltas.Counterparties[suite.vendorID].Equal(decimal.NewFromInt(500)))
}

func (suite *TransactionServiceTestSuite) TestCreateSettlement_IdempotentReplay() {
	ctx := context.Background()
	key := uuid.NewString()
	existing := &domain.TransactionRecord{
		TransactionID:  uuid.NewString(),
		Type:           domain.PayAble,
		IdempotencyKey: key,
	}

	suite.mockTxnRepo.On("FindTransactionByIdempotencyKey", ctx, key).Return(existing, nil).Once()

	rec, err := suite.service.CreateSettlement(ctx, dto.CreateSettlementRequest{}, suite.userID, key)

	suite.Require().NoError(err)
	suite.Equal(existing.TransactionID, rec.TransactionID)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCpSvc.AssertNotCalled(suite.T(), "ResolveForSettlement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateSettlement_MissingAccount() {
	ctx := context.Background()
	req := dto.CreateSettlementRequest{
		CounterpartyID: suite.vendorID,
		Role:           "VENDOR",
		Direction:      "payment",
		Amount:         decimal.NewFromInt(100),
		Date:           time.Now(),
		ModeOfPayment:  "cash",
	}

	_, err := suite.service.CreateSettlement(ctx, req, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingAccount)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateSettlement_InactiveAccount() {
	ctx := context.Background()
	account := suite.activeAccount()
	account.IsActive = false
	req := dto.CreateSettlementRequest{
		CounterpartyID: suite.vendorID,
		Role:           "VENDOR",
		Direction:      "payment",
		Amount:         decimal.NewFromInt(100),
		AccountID:      suite.accountID,
		Date:           time.Now(),
		ModeOfPayment:  "cash",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(account, nil).Once()

	_, err := suite.service.CreateSettlement(ctx, req, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateAdvance_DrivesBalanceNegative() {
	ctx := context.Background()
	vendor := &domain.Counterparty{
		CounterpartyID: suite.vendorID,
		Name:           "Flour Mills",
		Role:           domain.RoleVendor,
		Balance:        decimal.Zero,
		IsActive:       true,
	}
	req := dto.CreateAdvanceRequest{
		CounterpartyID: suite.vendorID,
		Amount:         decimal.NewFromInt(1500),
		AccountID:      suite.accountID,
		Date:           time.Now(),
		ModeOfPayment:  "cash",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockCpSvc.On("GetCounterpartyByID", ctx, suite.vendorID).Return(vendor, nil).Once()

	var savedDeltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(3).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	rec, err := suite.service.CreateAdvance(ctx, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.AdvanceSalePayment, rec.Type)
	suite.True(rec.TotalAmount.Equal(rec.PaidAmount))
	suite.True(rec.RemainingPayment.IsZero())
	suite.True(rec.IsPaid())
	suite.True(savedDeltas.Counterparties[suite.vendorID].Equal(decimal.NewFromInt(-1500)))
}

func (suite *TransactionServiceTestSuite) TestCreateInternal_DepositCreditsAccount() {
	ctx := context.Background()
	req := dto.CreateInternalRequest{
		Type:          "deposit",
		Amount:        decimal.NewFromInt(10000),
		AccountID:     suite.accountID,
		Date:          time.Now(),
		ModeOfPayment: "bank_transfer",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()

	var savedDeltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(3).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	rec, err := suite.service.CreateInternal(ctx, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.Deposit, rec.Type)
	suite.Equal(suite.accountID, rec.DestinationAccountID)
	suite.Empty(rec.SourceAccountID)
	suite.True(savedDeltas.Accounts[suite.accountID].Equal(decimal.NewFromInt(10000)))
	suite.Empty(savedDeltas.Counterparties)
}

func (suite *TransactionServiceTestSuite) TestCreateDailyBook_PurchasePartialPayment() {
	ctx := context.Background()
	flourID := uuid.NewString()
	sugarID := uuid.NewString()
	vendor := &domain.Counterparty{
		CounterpartyID: suite.vendorID,
		Name:           "Flour Mills",
		Role:           domain.RoleVendor,
		IsActive:       true,
	}
	req := dto.CreateDailyBookRequest{
		Type:           "purchase",
		CounterpartyID: suite.vendorID,
		PaidAmount:     decimal.NewFromInt(1000),
		AccountID:      suite.accountID,
		Date:           time.Now(),
		ModeOfPayment:  "cash",
		LineItems: []dto.LineItemRequest{
			{ProductID: flourID, Quantity: decimal.NewFromInt(20), UnitPrice: decimal.NewFromInt(100)},
			{ProductID: sugarID, Quantity: decimal.NewFromInt(5), UnitPrice: decimal.NewFromInt(120)},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockCpSvc.On("GetCounterpartyByID", ctx, suite.vendorID).Return(vendor, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{flourID, sugarID}).Return(map[string]domain.Product{
		flourID: {ProductID: flourID, Name: "Flour", Unit: "kg"},
		sugarID: {ProductID: sugarID, Name: "Sugar", Unit: "kg"},
	}, nil).Once()

	var savedItems []domain.LineItem
	var savedDeltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedItems = args.Get(2).([]domain.LineItem)
			savedDeltas = args.Get(3).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	rec, err := suite.service.CreateDailyBook(ctx, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(domain.Purchase, rec.Type)
	// 20*100 + 5*120 = 2600
	suite.Equal("2600", rec.TotalAmount.String())
	suite.Equal("1000", rec.PaidAmount.String())
	suite.Equal("1600", rec.RemainingPayment.String())
	suite.Equal(suite.vendorID, rec.AccountPayableID)
	suite.Equal(suite.accountID, rec.SourceAccountID)
	suite.False(rec.IsPaid())

	suite.Require().Len(savedItems, 2)
	suite.Equal("Flour", savedItems[0].ProductName)
	suite.Equal(rec.TransactionID, savedItems[0].TransactionID)

	// The unpaid part becomes new vendor debt; the paid part leaves the account.
	suite.True(savedDeltas.Counterparties[suite.vendorID].Equal(decimal.NewFromInt(1600)))
	suite.True(savedDeltas.Accounts[suite.accountID].Equal(decimal.NewFromInt(-1000)))
}

func (suite *TransactionServiceTestSuite) TestCreateDailyBook_UnpaidNeedsNoAccount() {
	ctx := context.Background()
	flourID := uuid.NewString()
	client := &domain.Counterparty{
		CounterpartyID: suite.vendorID,
		Name:           "Karachi Retail",
		Role:           domain.RoleClient,
		IsActive:       true,
	}
	req := dto.CreateDailyBookRequest{
		Type:           "sale",
		CounterpartyID: suite.vendorID,
		Date:           time.Now(),
		ModeOfPayment:  "cash",
		LineItems: []dto.LineItemRequest{
			{ProductID: flourID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockCpSvc.On("GetCounterpartyByID", ctx, suite.vendorID).Return(client, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{flourID}).Return(map[string]domain.Product{
		flourID: {ProductID: flourID, Name: "Flour"},
	}, nil).Once()

	var savedDeltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(3).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	rec, err := suite.service.CreateDailyBook(ctx, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Empty(rec.SourceAccountID)
	suite.Empty(rec.DestinationAccountID)
	suite.Equal("500", rec.RemainingPayment.String())
	suite.Empty(savedDeltas.Accounts)
	suite.True(savedDeltas.Counterparties[suite.vendorID].Equal(decimal.NewFromInt(500)))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateDailyBook_PaidExceedsTotal() {
	ctx := context.Background()
	flourID := uuid.NewString()
	vendor := &domain.Counterparty{
		CounterpartyID: suite.vendorID,
		Role:           domain.RoleVendor,
		IsActive:       true,
	}
	req := dto.CreateDailyBookRequest{
		Type:           "purchase",
		CounterpartyID: suite.vendorID,
		PaidAmount:     decimal.NewFromInt(9999),
		AccountID:      suite.accountID,
		Date:           time.Now(),
		ModeOfPayment:  "cash",
		LineItems: []dto.LineItemRequest{
			{ProductID: flourID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(suite.activeAccount(), nil).Once()
	suite.mockCpSvc.On("GetCounterpartyByID", ctx, suite.vendorID).Return(vendor, nil).Once()
	suite.mockProductRepo.On("FindProductsByIDs", ctx, []string{flourID}).Return(map[string]domain.Product{
		flourID: {ProductID: flourID, Name: "Flour"},
	}, nil).Once()

	_, err := suite.service.CreateDailyBook(ctx, req, suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesDeltas() {
	ctx := context.Background()
	txnID := uuid.NewString()
	rec := &domain.TransactionRecord{
		TransactionID:    txnID,
		Type:             domain.PayAble,
		TotalAmount:      decimal.NewFromInt(5000),
		PaidAmount:       decimal.NewFromInt(2000),
		RemainingPayment: decimal.NewFromInt(3000),
		SourceAccountID:  suite.accountID,
		AccountPayableID: suite.vendorID,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(rec, nil).Once()

	var deltas portsrepo.BalanceDeltas
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID, mock.Anything).
		Run(func(args mock.Arguments) {
			deltas = args.Get(2).(portsrepo.BalanceDeltas)
		}).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, suite.userID)

	suite.Require().NoError(err)
	// Deletion restores what the payment took away.
	suite.True(deltas.Accounts[suite.accountID].Equal(decimal.NewFromInt(2000)))
	suite.True(deltas.Counterparties[suite.vendorID].Equal(decimal.NewFromInt(2000)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_InvalidatesSummaryCache() {
	ctx := context.Background()
	txnID := uuid.NewString()
	rec := &domain.TransactionRecord{
		TransactionID: txnID,
		Type:          domain.Deposit,
		PaidAmount:    decimal.NewFromInt(100),
	}

	invalidated := map[events.ReadModel]bool{}
	suite.bus.Subscribe(func(m events.ReadModel) {
		invalidated[m] = true
	}, events.ReadModelAccounts, events.ReadModelCounterparties, events.ReadModelSummary)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).Return(rec, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, txnID, mock.Anything).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, txnID, suite.userID)

	suite.Require().NoError(err)
	suite.True(invalidated[events.ReadModelSummary])
	suite.True(invalidated[events.ReadModelAccounts])
	suite.True(invalidated[events.ReadModelCounterparties])
}

func (suite *TransactionServiceTestSuite) TestListTransactions_SearchRefinesPage() {
	ctx := context.Background()
	match := domain.TransactionRecord{
		TransactionID:       uuid.NewString(),
		Type:                domain.ReceiveAble,
		PaidAmount:          decimal.NewFromInt(700),
		Description:         "weekly collection",
		AccountReceivableID: suite.vendorID,
	}
	other := domain.TransactionRecord{
		TransactionID: uuid.NewString(),
		Type:          domain.Deposit,
		PaidAmount:    decimal.NewFromInt(100),
		Description:   "cash drop",
	}

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.Anything).Return([]domain.TransactionRecord{match, other}, nil, nil).Once()
	suite.mockCpSvc.On("GetCounterpartyByID", ctx, suite.vendorID).Return(&domain.Counterparty{
		CounterpartyID: suite.vendorID,
		Name:           "Karachi Retail",
		Role:           domain.RoleClient,
	}, nil).Once()

	recs, next, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Search: "karachi"})

	suite.Require().NoError(err)
	suite.Nil(next)
	suite.Require().Len(recs, 1)
	suite.Equal(match.TransactionID, recs[0].TransactionID)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
