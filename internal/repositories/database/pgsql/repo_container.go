package pgsql

import (
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	receivableRepo := newPgxReceivableRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, receivableRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		CurrencyRepo:   currencyRepo,
		LedgerRepo:     ledgerRepo,
		ReceivableRepo: receivableRepo,
	}
}
