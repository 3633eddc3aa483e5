package planning

import (
	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Default health score weights. The three terms are each in [0,100], so the
// composite stays in [0,100] as long as the weights sum to 1.
const (
	savingsRateWeight  = 0.5
	burnRateWeight     = 0.3
	goalProgressWeight = 0.2
)

// HealthScorer maps a month's metrics to a composite wellness score in
// [0,100]. It is a pluggable strategy so the weighting can change without
// touching callers.
type HealthScorer func(savingsRate, burnRate, goalProgress float64) float64

// DefaultHealthScorer combines the clamped savings rate (weight 0.5), the
// inverted burn rate max(0, 100-burn) (weight 0.3), and the goal progress
// ratio scaled to [0,100] (weight 0.2).
func DefaultHealthScorer(savingsRate, burnRate, goalProgress float64) float64 {
	savingsTerm := clamp(savingsRate, 0, 100)
	burnTerm := clamp(100-burnRate, 0, 100)
	goalTerm := clamp(goalProgress, 0, 1) * 100
	score := savingsRateWeight*savingsTerm + burnRateWeight*burnTerm + goalProgressWeight*goalTerm
	return clamp(score, 0, 100)
}

// MetricsInput carries one month's aggregated totals plus the context needed
// for scoring and deltas.
type MetricsInput struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	// Goals are the user's goals as of the month; only incomplete goals with
	// a positive target enter the progress ratio.
	Goals []domain.Goal
	// Previous is the prior month's snapshot, nil when none exists.
	Previous *domain.MonthlySnapshot
}

// MonthlyMetrics is the derived health picture for one month.
type MonthlyMetrics struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	TotalSavings  decimal.Decimal
	BurnRate      float64
	SavingsRate   float64
	HealthScore   float64

	IncomeChangePercent   *float64
	ExpensesChangePercent *float64
	SavingsChangePercent  *float64
}

// ComputeMonthlyMetrics derives burn rate, savings rate, health score, and
// month-over-month deltas from a month's totals. With positive income,
// BurnRate + SavingsRate is exactly 100. A nil scorer uses
// DefaultHealthScorer.
func ComputeMonthlyMetrics(in MetricsInput, scorer HealthScorer) MonthlyMetrics {
	if scorer == nil {
		scorer = DefaultHealthScorer
	}

	savings := in.TotalIncome.Sub(in.TotalExpenses)
	m := MonthlyMetrics{
		TotalIncome:   in.TotalIncome,
		TotalExpenses: in.TotalExpenses,
		TotalSavings:  savings,
	}

	if in.TotalIncome.IsPositive() {
		income, _ := in.TotalIncome.Float64()
		expenses, _ := in.TotalExpenses.Float64()
		m.BurnRate = expenses / income * 100
		m.SavingsRate = 100 - m.BurnRate
	}

	m.HealthScore = scorer(m.SavingsRate, m.BurnRate, GoalProgressRatio(in.Goals))

	if in.Previous != nil {
		income, _ := in.TotalIncome.Float64()
		expenses, _ := in.TotalExpenses.Float64()
		savingsF, _ := savings.Float64()
		prevIncome, _ := in.Previous.TotalIncome.Float64()
		prevExpenses, _ := in.Previous.TotalExpenses.Float64()
		prevSavings, _ := in.Previous.TotalSavings.Float64()
		m.IncomeChangePercent = ChangePercent(income, prevIncome)
		m.ExpensesChangePercent = ChangePercent(expenses, prevExpenses)
		m.SavingsChangePercent = ChangePercent(savingsF, prevSavings)
	}

	return m
}

// GoalProgressRatio averages current/target across incomplete goals with a
// positive target, each capped at 1. With no such goals it returns 1: having
// nothing left to save toward does not lower the health score.
func GoalProgressRatio(goals []domain.Goal) float64 {
	var sum float64
	var counted int
	for _, g := range goals {
		if g.IsCompleted || !g.TargetAmount.IsPositive() {
			continue
		}
		progress, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
		sum += clamp(progress, 0, 1)
		counted++
	}
	if counted == 0 {
		return 1
	}
	return sum / float64(counted)
}

// ChangePercent returns (current-previous)/previous*100, or nil when the
// previous value is zero. It never produces Inf or NaN.
func ChangePercent(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	pct := (current - previous) / previous * 100
	return &pct
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
