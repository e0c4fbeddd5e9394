package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	counterpartyRepo := newPgxCounterpartyRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo, counterpartyRepo)
	productRepo := newPgxProductRepository(dbPool)
	purchaserRepo := newPgxPurchaserRepository(dbPool)
	junctionRepo := newPgxJunctionRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		CounterpartyRepo: counterpartyRepo,
		TransactionRepo:  transactionRepo,
		ProductRepo:      productRepo,
		PurchaserRepo:    purchaserRepo,
		JunctionRepo:     junctionRepo,
		UserRepo:         userRepo,
	}
}
