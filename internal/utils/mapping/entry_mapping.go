package mapping

import (
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/models"
)

// ToModelEntry converts a domain OneTimeEntry to a model OneTimeEntry
func ToModelEntry(d domain.OneTimeEntry) models.OneTimeEntry {
	return models.OneTimeEntry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		Kind:        models.FlowKind(d.Kind),
		Amount:      d.Amount,
		Date:        d.Date,
		Category:    d.Category,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model OneTimeEntry to a domain OneTimeEntry
func ToDomainEntry(m models.OneTimeEntry) domain.OneTimeEntry {
	return domain.OneTimeEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Kind:        domain.FlowKind(m.Kind),
		Amount:      m.Amount,
		Date:        m.Date,
		Category:    m.Category,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model OneTimeEntries to domain OneTimeEntries
func ToDomainEntrySlice(ms []models.OneTimeEntry) []domain.OneTimeEntry {
	ds := make([]domain.OneTimeEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
