package mapping

import (
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/corefin/gl_ledger_app/internal/models"
)

// ToModelEntry converts a domain JournalEntry to its row model. Lines are
// mapped separately; the row model never carries them.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		CompanyID:        d.CompanyID,
		DocumentNo:       d.DocumentNo,
		EntryType:        models.EntryType(d.EntryType),
		Status:           models.EntryStatus(d.Status),
		PostingDate:      d.PostingDate,
		DocumentDate:     d.DocumentDate,
		Description:      d.Description,
		Reference:        d.Reference,
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a row model to a domain JournalEntry.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		CompanyID:        m.CompanyID,
		DocumentNo:       m.DocumentNo,
		EntryType:        domain.EntryType(m.EntryType),
		Status:           domain.EntryStatus(m.Status),
		PostingDate:      m.PostingDate,
		DocumentDate:     m.DocumentDate,
		Description:      m.Description,
		Reference:        m.Reference,
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLine converts a domain JournalLine to its row model
func ToModelLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:            d.LineID,
		EntryID:           d.EntryID,
		AccountID:         d.AccountID,
		Amount:            d.Amount,
		Direction:         models.Direction(d.Direction),
		CostCenterID:      d.CostCenterID,
		BusinessPartnerID: d.BusinessPartnerID,
		ClearingID:        d.ClearingID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLine converts a row model to a domain JournalLine
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:            m.LineID,
		EntryID:           m.EntryID,
		AccountID:         m.AccountID,
		Amount:            m.Amount,
		Direction:         domain.Direction(m.Direction),
		CostCenterID:      m.CostCenterID,
		BusinessPartnerID: m.BusinessPartnerID,
		ClearingID:        m.ClearingID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineSlice converts a slice of row models to domain JournalLines
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
