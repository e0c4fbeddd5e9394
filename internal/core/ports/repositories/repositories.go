package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	CounterpartyRepo CounterpartyRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	ProductRepo      ProductRepositoryFacade
	PurchaserRepo    PurchaserRepositoryFacade
	JunctionRepo     JunctionRepositoryFacade
	UserRepo         UserRepositoryFacade
}
