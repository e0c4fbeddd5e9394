package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	mockCpRepo  *MockCounterpartyRepository
	bus         *events.InvalidationBus
	service     portssvc.ReportingSvcFacade

	vendorID string
	clientID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCpRepo = new(MockCounterpartyRepository)
	suite.bus = events.NewInvalidationBus()
	suite.service = services.NewReportingService(suite.mockTxnRepo, suite.mockCpRepo, suite.bus)

	suite.vendorID = uuid.NewString()
	suite.clientID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) expectCounterparties() {
	suite.mockCpRepo.On("ListCounterparties", mock.Anything, domain.RoleVendor).
		Return([]domain.Counterparty{{CounterpartyID: suite.vendorID, Name: "Flour Mills", Role: domain.RoleVendor}}, nil)
	suite.mockCpRepo.On("ListCounterparties", mock.Anything, domain.RoleClient).
		Return([]domain.Counterparty{{CounterpartyID: suite.clientID, Name: "Karachi Retail", Role: domain.RoleClient}}, nil)
}

func (suite *ReportingServiceTestSuite) records() []domain.TransactionRecord {
	return []domain.TransactionRecord{
		{
			TransactionID:    uuid.NewString(),
			Type:             domain.Purchase,
			TotalAmount:      decimal.NewFromInt(2600),
			PaidAmount:       decimal.NewFromInt(1000),
			RemainingPayment: decimal.NewFromInt(1600),
			AccountPayableID: suite.vendorID,
		},
		{
			TransactionID:       uuid.NewString(),
			Type:                domain.ReceiveAble,
			TotalAmount:         decimal.NewFromInt(500),
			PaidAmount:          decimal.NewFromInt(500),
			RemainingPayment:    decimal.Zero,
			AccountReceivableID: suite.clientID,
		},
	}
}

func (suite *ReportingServiceTestSuite) TestSummary_ComputesAndCaches() {
	ctx := context.Background()
	suite.expectCounterparties()
	recs := suite.records()
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, mock.Anything).Return(recs, nil, nil).Once()
	suite.mockTxnRepo.On("FindLineItemsByTransactionID", mock.Anything, recs[0].TransactionID).
		Return([]domain.LineItem{{ProductName: "Flour"}, {ProductName: "Sugar"}}, nil).Once()

	metrics, err := suite.service.Summary(ctx, dto.SummaryParams{})

	suite.Require().NoError(err)
	suite.Equal(2, metrics.TotalCount)
	suite.Equal(1, metrics.PaidCount)
	suite.Equal(1, metrics.UnpaidCount)
	// The purchase row is more unpaid than paid, so its settled part clamps to 0.
	suite.Equal("500", metrics.PaidAmount.String())
	suite.Equal("1600", metrics.UnpaidAmount.String())
	suite.Equal([]string{"Flour Mills", "Karachi Retail"}, metrics.Counterparties.Shown)
	suite.Equal([]string{"Flour", "Sugar"}, metrics.LineItems.Shown)

	// Second call must come from the cache without touching the store again.
	again, err := suite.service.Summary(ctx, dto.SummaryParams{})
	suite.Require().NoError(err)
	suite.Equal(metrics, again)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "ListTransactions", 1)
}

func (suite *ReportingServiceTestSuite) TestSummary_BusInvalidationDropsCache() {
	ctx := context.Background()
	suite.expectCounterparties()
	recs := suite.records()
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, mock.Anything).Return(recs, nil, nil).Twice()
	suite.mockTxnRepo.On("FindLineItemsByTransactionID", mock.Anything, recs[0].TransactionID).
		Return([]domain.LineItem{}, nil).Twice()

	_, err := suite.service.Summary(ctx, dto.SummaryParams{})
	suite.Require().NoError(err)

	suite.bus.Invalidate(events.ReadModelSummary)

	_, err = suite.service.Summary(ctx, dto.SummaryParams{})
	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertNumberOfCalls(suite.T(), "ListTransactions", 2)
}

func (suite *ReportingServiceTestSuite) TestSummary_FilteredNotCached() {
	ctx := context.Background()
	suite.expectCounterparties()
	recs := suite.records()
	suite.mockTxnRepo.On("ListTransactions", mock.Anything, mock.Anything).Return(recs, nil, nil).Once()
	suite.mockTxnRepo.On("FindLineItemsByTransactionID", mock.Anything, recs[0].TransactionID).
		Return([]domain.LineItem{}, nil).Once()

	metrics, err := suite.service.Summary(ctx, dto.SummaryParams{PaymentStatus: "unpaid", TransactionType: "purchase"})

	suite.Require().NoError(err)
	suite.Equal(1, metrics.TotalCount)
	suite.Equal(0, metrics.PaidCount)
	suite.Equal("1600", metrics.UnpaidAmount.String())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
