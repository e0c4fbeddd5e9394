package services

import (
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/events"
	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The invalidation bus connects mutating services to cached read paths.
	bus := events.NewInvalidationBus()

	container.Account = NewAccountService(repos.AccountRepo, bus)
	container.Counterparty = NewCounterpartyService(repos.CounterpartyRepo, bus)
	container.Product = NewProductService(repos.ProductRepo)
	container.Purchaser = NewPurchaserService(repos.PurchaserRepo)
	container.Association = NewAssociationService(repos.JunctionRepo, repos.ProductRepo, repos.PurchaserRepo, repos.CounterpartyRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.ProductRepo,
		container.Counterparty,
		bus,
	)

	// Reporting subscribes to the bus before any mutation can happen.
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.CounterpartyRepo, bus)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
