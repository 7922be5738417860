package mapping

import (
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	"github.com/bizrecords/ledger_backend/internal/models"
)

// ToModelLedgerTransaction converts a domain LedgerTransaction to its row model.
// Details are mapped separately; they live in their own table.
func ToModelLedgerTransaction(d domain.LedgerTransaction) models.LedgerTransaction {
	m := models.LedgerTransaction{
		TransactionID: d.TransactionID,
		Operation:     string(d.Operation),
		AccountID:     d.AccountID,
		ToID:          d.ToID,
		Amount:        d.Amount,
		Description:   d.Description,
		Reference:     d.Reference,
		Date:          d.Date,
		CurrencyCode:  d.CurrencyCode,
		Conciliation:  d.Conciliation,
		Status:        string(d.Status),
		IsMoney:       d.IsMoney,
		CreatorID:     d.CreatorID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.ApproverID != "" {
		approver := d.ApproverID
		m.ApproverID = &approver
	}
	return m
}

// ToDomainLedgerTransaction converts a row model back to the domain entity.
func ToDomainLedgerTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	d := domain.LedgerTransaction{
		TransactionID: m.TransactionID,
		Operation:     domain.OperationType(m.Operation),
		AccountID:     m.AccountID,
		ToID:          m.ToID,
		Amount:        m.Amount,
		Description:   m.Description,
		Reference:     m.Reference,
		Date:          m.Date,
		CurrencyCode:  m.CurrencyCode,
		Conciliation:  m.Conciliation,
		Status:        domain.LedgerStatus(m.Status),
		IsMoney:       m.IsMoney,
		CreatorID:     m.CreatorID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ApproverID != nil {
		d.ApproverID = *m.ApproverID
	}
	return d
}

// ToModelLedgerDetail converts a domain LedgerDetail to its row model.
func ToModelLedgerDetail(d domain.LedgerDetail) models.LedgerDetail {
	return models.LedgerDetail{
		DetailID:      d.DetailID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		State:         string(d.State),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerDetail converts a row model back to the domain posting.
func ToDomainLedgerDetail(m models.LedgerDetail) domain.LedgerDetail {
	return domain.LedgerDetail{
		DetailID:      m.DetailID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		State:         domain.DetailState(m.State),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerDetailSlice converts a slice of detail row models.
func ToDomainLedgerDetailSlice(ms []models.LedgerDetail) []domain.LedgerDetail {
	ds := make([]domain.LedgerDetail, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerDetail(m)
	}
	return ds
}
