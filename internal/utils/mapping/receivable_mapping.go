package mapping

import (
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/bizrecords/ledger_backend/internal/models"
)

// ToModelReceivable converts a domain Receivable to a model Receivable
func ToModelReceivable(d domain.Receivable) models.Receivable {
	return models.Receivable{
		ReceivableID: d.ReceivableID,
		Name:         d.Name,
		ContactID:    d.ContactID,
		CurrencyCode: d.CurrencyCode,
		Total:        d.Total,
		Balance:      d.Balance,
		State:        string(d.State),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReceivable converts a model Receivable to a domain Receivable
func ToDomainReceivable(m models.Receivable) domain.Receivable {
	return domain.Receivable{
		ReceivableID: m.ReceivableID,
		Name:         m.Name,
		ContactID:    m.ContactID,
		CurrencyCode: m.CurrencyCode,
		Total:        m.Total,
		Balance:      m.Balance,
		State:        domain.ReceivableState(m.State),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
