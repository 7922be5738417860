package services

import (
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/bizrecords/ledger_backend/internal/core/ports/services"
)

// NewServiceContainer wires every application service against the given
// repositories and returns the container the handlers consume.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	accountSvc := NewAccountService(repos.AccountRepo, repos.CurrencyRepo)
	receivableSvc := NewReceivableService(repos.ReceivableRepo, repos.AccountRepo)
	ledgerSvc := NewLedgerService(repos.LedgerRepo, accountSvc)
	batchPaymentSvc := NewBatchPaymentService(repos.LedgerRepo, repos.ReceivableRepo, accountSvc)

	return &portssvc.ServiceContainer{
		Account:      accountSvc,
		Currency:     currencySvc,
		Ledger:       ledgerSvc,
		Receivable:   receivableSvc,
		BatchPayment: batchPaymentSvc,
	}
}
