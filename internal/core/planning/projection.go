package planning

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConfidenceParams controls how a projection's stated reliability decays as
// the horizon grows.
type ConfidenceParams struct {
	Initial       float64
	DecayPerMonth float64
	Floor         float64
}

// DefaultConfidenceParams returns the standard decay: start at 0.95, lose
// 0.03 per month, never drop below 0.50.
func DefaultConfidenceParams() ConfidenceParams {
	return ConfidenceParams{Initial: 0.95, DecayPerMonth: 0.03, Floor: 0.50}
}

// At returns the confidence level m months out. The result is non-increasing
// in m and bounded by [Floor, Initial].
func (p ConfidenceParams) At(m int) float64 {
	c := p.Initial - p.DecayPerMonth*float64(m)
	if c < p.Floor {
		return p.Floor
	}
	return c
}

// ProjectForward extrapolates balance, income, and expenses horizonMonths
// ahead of start, holding the monthly figures constant. This is a linear
// planning heuristic, not a stochastic forecast: month m's balance is simply
// balance + (income-expenses)*m.
func ProjectForward(
	start time.Time,
	balance, monthlyIncome, monthlyExpenses decimal.Decimal,
	horizonMonths int,
	params ConfidenceParams,
) []domain.ProjectionPoint {
	if horizonMonths <= 0 {
		return []domain.ProjectionPoint{}
	}

	net := monthlyIncome.Sub(monthlyExpenses)
	points := make([]domain.ProjectionPoint, 0, horizonMonths)
	for m := 1; m <= horizonMonths; m++ {
		points = append(points, domain.ProjectionPoint{
			MonthIndex:        m,
			Month:             AddMonths(start, m),
			ProjectedBalance:  balance.Add(net.Mul(decimal.NewFromInt(int64(m)))).Round(2),
			ProjectedIncome:   monthlyIncome,
			ProjectedExpenses: monthlyExpenses,
			ConfidenceLevel:   params.At(m),
		})
	}
	return points
}
