package mapping

import (
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/models"
)

// ToModelStream converts a domain CashFlowStream to a model CashFlowStream
func ToModelStream(d domain.CashFlowStream) models.CashFlowStream {
	return models.CashFlowStream{
		StreamID:    d.StreamID,
		UserID:      d.UserID,
		Name:        d.Name,
		Kind:        models.FlowKind(d.Kind),
		Amount:      d.Amount,
		Frequency:   models.Frequency(d.Frequency),
		ActiveFrom:  d.ActiveFrom,
		ActiveUntil: d.ActiveUntil,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStream converts a model CashFlowStream to a domain CashFlowStream
func ToDomainStream(m models.CashFlowStream) domain.CashFlowStream {
	return domain.CashFlowStream{
		StreamID:    m.StreamID,
		UserID:      m.UserID,
		Name:        m.Name,
		Kind:        domain.FlowKind(m.Kind),
		Amount:      m.Amount,
		Frequency:   domain.Frequency(m.Frequency),
		ActiveFrom:  m.ActiveFrom,
		ActiveUntil: m.ActiveUntil,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStreamSlice converts a slice of model CashFlowStreams to domain CashFlowStreams
func ToDomainStreamSlice(ms []models.CashFlowStream) []domain.CashFlowStream {
	ds := make([]domain.CashFlowStream, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStream(m)
	}
	return ds
}
