package mapping

import (
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/models"
)

// ToModelSnapshot converts a domain MonthlySnapshot to a model MonthlySnapshot
func ToModelSnapshot(d domain.MonthlySnapshot) models.MonthlySnapshot {
	return models.MonthlySnapshot{
		UserID:                d.UserID,
		Month:                 d.Month,
		TotalIncome:           d.TotalIncome,
		TotalExpenses:         d.TotalExpenses,
		TotalSavings:          d.TotalSavings,
		BurnRate:              d.BurnRate,
		SavingsRate:           d.SavingsRate,
		HealthScore:           d.HealthScore,
		IncomeChangePercent:   d.IncomeChangePercent,
		ExpensesChangePercent: d.ExpensesChangePercent,
		SavingsChangePercent:  d.SavingsChangePercent,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSnapshot converts a model MonthlySnapshot to a domain MonthlySnapshot
func ToDomainSnapshot(m models.MonthlySnapshot) domain.MonthlySnapshot {
	return domain.MonthlySnapshot{
		UserID:                m.UserID,
		Month:                 m.Month,
		TotalIncome:           m.TotalIncome,
		TotalExpenses:         m.TotalExpenses,
		TotalSavings:          m.TotalSavings,
		BurnRate:              m.BurnRate,
		SavingsRate:           m.SavingsRate,
		HealthScore:           m.HealthScore,
		IncomeChangePercent:   m.IncomeChangePercent,
		ExpensesChangePercent: m.ExpensesChangePercent,
		SavingsChangePercent:  m.SavingsChangePercent,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSnapshotSlice converts a slice of model MonthlySnapshots to domain MonthlySnapshots
func ToDomainSnapshotSlice(ms []models.MonthlySnapshot) []domain.MonthlySnapshot {
	ds := make([]domain.MonthlySnapshot, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSnapshot(m)
	}
	return ds
}
