package mapping

import (
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/models"
)

// ToModelGoal converts a domain Goal to a model Goal
func ToModelGoal(d domain.Goal) models.Goal {
	m := models.Goal{
		GoalID:        d.GoalID,
		UserID:        d.UserID,
		Name:          d.Name,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		TargetDate:    d.TargetDate,
		IsCompleted:   d.IsCompleted,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.AssetParams != nil {
		price := d.AssetParams.InitialPrice
		rate := d.AssetParams.AnnualRate
		ratio := d.AssetParams.DownPaymentRatio
		m.AssetInitialPrice = &price
		m.AssetAnnualRate = &rate
		m.AssetDownPaymentRatio = &ratio
	}
	return m
}

// ToDomainGoal converts a model Goal to a domain Goal
func ToDomainGoal(m models.Goal) domain.Goal {
	d := domain.Goal{
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		IsCompleted:   m.IsCompleted,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.AssetInitialPrice != nil {
		d.AssetParams = &domain.AssetParams{
			InitialPrice: *m.AssetInitialPrice,
		}
		if m.AssetAnnualRate != nil {
			d.AssetParams.AnnualRate = *m.AssetAnnualRate
		}
		if m.AssetDownPaymentRatio != nil {
			d.AssetParams.DownPaymentRatio = *m.AssetDownPaymentRatio
		}
	}
	return d
}

// ToDomainGoalSlice converts a slice of model Goals to domain Goals
func ToDomainGoalSlice(ms []models.Goal) []domain.Goal {
	ds := make([]domain.Goal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGoal(m)
	}
	return ds
}

// ToModelContribution converts a domain GoalContribution to a model GoalContribution
func ToModelContribution(d domain.GoalContribution) models.GoalContribution {
	return models.GoalContribution{
		ContributionID: d.ContributionID,
		GoalID:         d.GoalID,
		Amount:         d.Amount,
		Month:          d.Month,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContribution converts a model GoalContribution to a domain GoalContribution
func ToDomainContribution(m models.GoalContribution) domain.GoalContribution {
	return domain.GoalContribution{
		ContributionID: m.ContributionID,
		GoalID:         m.GoalID,
		Amount:         m.Amount,
		Month:          m.Month,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContributionSlice converts a slice of model GoalContributions to domain GoalContributions
func ToDomainContributionSlice(ms []models.GoalContribution) []domain.GoalContribution {
	ds := make([]domain.GoalContribution, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContribution(m)
	}
	return ds
}
