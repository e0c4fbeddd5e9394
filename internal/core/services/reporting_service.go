package services

import (
	"context"
	"sync"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ledger"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// summaryPageSize bounds each fetch while walking the full record set.
const summaryPageSize = 500

// reportingService implements the ReportingSvcFacade interface. The
// unfiltered summary is cached and dropped whenever the invalidation bus
// announces a ledger mutation.
type reportingService struct {
	BaseService
	transactionRepo  portsrepo.TransactionRepositoryFacade
	counterpartyRepo portsrepo.CounterpartyReader

	mu     sync.Mutex
	cached *domain.Metrics
}

// NewReportingService creates a new reporting service subscribed to the bus.
func NewReportingService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	counterpartyRepo portsrepo.CounterpartyReader,
	bus *events.InvalidationBus,
) portssvc.ReportingSvcFacade {
	s := &reportingService{
		transactionRepo:  transactionRepo,
		counterpartyRepo: counterpartyRepo,
	}
	bus.Subscribe(func(events.ReadModel) {
		s.mu.Lock()
		s.cached = nil
		s.mu.Unlock()
	}, events.ReadModelSummary)
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func unfiltered(p dto.SummaryParams) bool {
	return p.Search == "" && p.DateFrom == nil && p.DateTo == nil &&
		p.AccountID == "" && p.CounterpartyID == "" && p.PaymentStatus == "" &&
		p.ModeOfPayment == "" && p.TransactionType == ""
}

func (s *reportingService) Summary(ctx context.Context, params dto.SummaryParams) (*domain.Metrics, error) {
	if unfiltered(params) {
		s.mu.Lock()
		cached := s.cached
		s.mu.Unlock()
		if cached != nil {
			s.LogDebug(ctx, "Summary served from cache")
			return cached, nil
		}
	}

	metrics, err := s.compute(ctx, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute summary")
		return nil, err
	}

	if unfiltered(params) {
		s.mu.Lock()
		s.cached = metrics
		s.mu.Unlock()
	}
	return metrics, nil
}

func (s *reportingService) compute(ctx context.Context, params dto.SummaryParams) (*domain.Metrics, error) {
	names, err := s.counterpartyNames(ctx)
	if err != nil {
		return nil, err
	}

	criteria := ledger.Criteria{
		Search:         params.Search,
		DateFrom:       params.DateFrom,
		DateTo:         params.DateTo,
		AccountID:      params.AccountID,
		CounterpartyID: params.CounterpartyID,
		PaymentStatus:  params.PaymentStatus,
		ModeOfPayment:  params.ModeOfPayment,
		Type:           params.TransactionType,
	}

	var inputs []ledger.MetricsInput
	var nextToken *string
	for {
		recs, token, err := s.transactionRepo.ListTransactions(ctx, portsrepo.ListTransactionsQuery{
			DateFrom:  params.DateFrom,
			DateTo:    params.DateTo,
			Limit:     summaryPageSize,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, err
		}

		for _, rec := range recs {
			name := names[rec.AccountPayableID]
			if name == "" {
				name = names[rec.AccountReceivableID]
			}
			if !ledger.Matches(ledger.FilterItem{Record: rec, CounterpartyName: name}, criteria) {
				continue
			}

			var itemNames []string
			if rec.Type == domain.Sale || rec.Type == domain.Purchase {
				items, err := s.transactionRepo.FindLineItemsByTransactionID(ctx, rec.TransactionID)
				if err != nil {
					return nil, err
				}
				for _, it := range items {
					itemNames = append(itemNames, it.ProductName)
				}
			}
			inputs = append(inputs, ledger.MetricsInput{
				Record:           rec,
				CounterpartyName: name,
				LineItemNames:    itemNames,
			})
		}

		if token == nil {
			break
		}
		nextToken = token
	}

	metrics := ledger.ComputeMetrics(inputs)
	return &metrics, nil
}

// counterpartyNames loads the id -> name map for both roles in one pass.
func (s *reportingService) counterpartyNames(ctx context.Context) (map[string]string, error) {
	names := make(map[string]string)
	for _, role := range []domain.CounterpartyRole{domain.RoleVendor, domain.RoleClient} {
		cps, err := s.counterpartyRepo.ListCounterparties(ctx, role)
		if err != nil {
			return nil, err
		}
		for _, cp := range cps {
			names[cp.CounterpartyID] = cp.Name
		}
	}
	return names, nil
}
