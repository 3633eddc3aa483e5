package planning_test

import (
	"testing"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsInput(income, expenses float64) planning.MetricsInput {
	return planning.MetricsInput{
		TotalIncome:   decimal.NewFromFloat(income),
		TotalExpenses: decimal.NewFromFloat(expenses),
	}
}

func TestComputeMonthlyMetrics_Rates(t *testing.T) {
	tests := []struct {
		name            string
		income          float64
		expenses        float64
		wantBurnRate    float64
		wantSavingsRate float64
	}{
		{
			name:            "typical month",
			income:          5000,
			expenses:        3500,
			wantBurnRate:    70,
			wantSavingsRate: 30,
		},
		{
			name:            "spending exceeds income",
			income:          4000,
			expenses:        5000,
			wantBurnRate:    125,
			wantSavingsRate: -25,
		},
		{
			name:            "zero income yields zero rates not NaN",
			income:          0,
			expenses:        1200,
			wantBurnRate:    0,
			wantSavingsRate: 0,
		},
		{
			name:            "no spending",
			income:          3000,
			expenses:        0,
			wantBurnRate:    0,
			wantSavingsRate: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := planning.ComputeMonthlyMetrics(metricsInput(tt.income, tt.expenses), nil)
			assert.InDelta(t, tt.wantBurnRate, m.BurnRate, 1e-6)
			assert.InDelta(t, tt.wantSavingsRate, m.SavingsRate, 1e-6)
			wantSavings := decimal.NewFromFloat(tt.income - tt.expenses)
			assert.True(t, m.TotalSavings.Equal(wantSavings), "savings got %s want %s", m.TotalSavings, wantSavings)
		})
	}
}

func TestComputeMonthlyMetrics_RateIdentity(t *testing.T) {
	// With positive income, burn rate and savings rate always sum to 100.
	cases := [][2]float64{
		{5000, 3500}, {1234.56, 789.01}, {100, 100}, {3000.01, 0.01}, {42, 4242},
	}
	for _, c := range cases {
		m := planning.ComputeMonthlyMetrics(metricsInput(c[0], c[1]), nil)
		assert.InDelta(t, 100, m.BurnRate+m.SavingsRate, 1e-6,
			"income=%v expenses=%v", c[0], c[1])
	}
}

func TestComputeMonthlyMetrics_HealthScoreBounds(t *testing.T) {
	cases := [][2]float64{
		{5000, 0}, {5000, 5000}, {5000, 25000}, {0, 3000}, {100, 99},
	}
	for _, c := range cases {
		m := planning.ComputeMonthlyMetrics(metricsInput(c[0], c[1]), nil)
		assert.GreaterOrEqual(t, m.HealthScore, 0.0, "income=%v expenses=%v", c[0], c[1])
		assert.LessOrEqual(t, m.HealthScore, 100.0, "income=%v expenses=%v", c[0], c[1])
	}
}

func TestComputeMonthlyMetrics_CustomScorer(t *testing.T) {
	called := false
	scorer := func(savingsRate, burnRate, goalProgress float64) float64 {
		called = true
		return 42
	}
	m := planning.ComputeMonthlyMetrics(metricsInput(5000, 3000), scorer)
	assert.True(t, called)
	assert.Equal(t, 42.0, m.HealthScore)
}

func TestComputeMonthlyMetrics_ChangePercents(t *testing.T) {
	previous := &domain.MonthlySnapshot{
		UserID:        "user-1",
		Month:         date(2025, time.February, 1),
		TotalIncome:   decimal.NewFromInt(4000),
		TotalExpenses: decimal.NewFromInt(2000),
		TotalSavings:  decimal.NewFromInt(2000),
	}

	in := metricsInput(5000, 3000)
	in.Previous = previous
	m := planning.ComputeMonthlyMetrics(in, nil)

	require.NotNil(t, m.IncomeChangePercent)
	assert.InDelta(t, 25, *m.IncomeChangePercent, 1e-6)
	require.NotNil(t, m.ExpensesChangePercent)
	assert.InDelta(t, 50, *m.ExpensesChangePercent, 1e-6)
	require.NotNil(t, m.SavingsChangePercent)
	assert.InDelta(t, 0, *m.SavingsChangePercent, 1e-6)
}

func TestComputeMonthlyMetrics_ChangePercentNilCases(t *testing.T) {
	t.Run("no previous snapshot", func(t *testing.T) {
		m := planning.ComputeMonthlyMetrics(metricsInput(5000, 3000), nil)
		assert.Nil(t, m.IncomeChangePercent)
		assert.Nil(t, m.ExpensesChangePercent)
		assert.Nil(t, m.SavingsChangePercent)
	})

	t.Run("previous value zero yields nil not Inf", func(t *testing.T) {
		in := metricsInput(5000, 3000)
		in.Previous = &domain.MonthlySnapshot{
			TotalIncome:   decimal.Zero,
			TotalExpenses: decimal.NewFromInt(100),
			TotalSavings:  decimal.NewFromInt(-100),
		}
		m := planning.ComputeMonthlyMetrics(in, nil)
		assert.Nil(t, m.IncomeChangePercent)
		assert.NotNil(t, m.ExpensesChangePercent)
	})
}

func TestGoalProgressRatio(t *testing.T) {
	goal := func(current, target float64, completed bool) domain.Goal {
		return domain.Goal{
			GoalID:        "goal-1",
			CurrentAmount: decimal.NewFromFloat(current),
			TargetAmount:  decimal.NewFromFloat(target),
			IsCompleted:   completed,
		}
	}

	tests := []struct {
		name  string
		goals []domain.Goal
		want  float64
	}{
		{
			name:  "no goals counts as full progress",
			goals: nil,
			want:  1,
		},
		{
			name:  "single goal halfway",
			goals: []domain.Goal{goal(500, 1000, false)},
			want:  0.5,
		},
		{
			name:  "average across goals",
			goals: []domain.Goal{goal(500, 1000, false), goal(0, 1000, false)},
			want:  0.25,
		},
		{
			name:  "completed goals excluded",
			goals: []domain.Goal{goal(1000, 1000, true), goal(200, 1000, false)},
			want:  0.2,
		},
		{
			name:  "overfunded goal capped at one",
			goals: []domain.Goal{goal(1500, 1000, false)},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, planning.GoalProgressRatio(tt.goals), 1e-9)
		})
	}
}
