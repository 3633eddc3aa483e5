package planning_test

import (
	"testing"

	"github.com/finsight/backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioInput() planning.ScenarioInput {
	return planning.ScenarioInput{
		MonthlyIncome:         decimal.NewFromInt(5000),
		MonthlySurplus:        decimal.NewFromInt(2000),
		TargetAmount:          decimal.NewFromInt(20000),
		CurrentSaved:          decimal.NewFromInt(5000),
		CandidateRates:        []float64{0.01, 0.025, 0.05, 0.10, 0.15, 0.20, 0.25},
		DesiredTimelineMonths: 24,
	}
}

func TestGenerateScenarios_TenPercentRate(t *testing.T) {
	set := planning.GenerateScenarios(scenarioInput())

	var found bool
	for _, s := range set.Scenarios {
		if s.SavingsRate != 0.10 {
			continue
		}
		found = true
		assert.True(t, s.MonthlyAmount.Equal(decimal.NewFromInt(500)), "monthly got %s", s.MonthlyAmount)
		assert.Equal(t, 30, s.TimelineMonths) // ceil(15000/500)
		assert.True(t, s.Feasible)
		assert.True(t, s.RemainingSurplus.Equal(decimal.NewFromInt(1500)), "surplus got %s", s.RemainingSurplus)
	}
	assert.True(t, found, "0.10 scenario missing from result set")
}

func TestGenerateScenarios_Monotonicity(t *testing.T) {
	set := planning.GenerateScenarios(scenarioInput())
	require.NotEmpty(t, set.Scenarios)

	for i := 1; i < len(set.Scenarios); i++ {
		prev, cur := set.Scenarios[i-1], set.Scenarios[i]
		assert.Less(t, prev.SavingsRate, cur.SavingsRate)
		assert.True(t, prev.MonthlyAmount.LessThanOrEqual(cur.MonthlyAmount),
			"monthly amount fell between rates %v and %v", prev.SavingsRate, cur.SavingsRate)
		assert.GreaterOrEqual(t, prev.TimelineMonths, cur.TimelineMonths,
			"timeline rose between rates %v and %v", prev.SavingsRate, cur.SavingsRate)
	}
}

func TestGenerateScenarios_RecommendationNearDesiredTimeline(t *testing.T) {
	in := scenarioInput()
	// Timelines: 1%→300, 2.5%→120, 5%→60, 10%→30, 15%→20, 20%→15, 25%→12.
	// Feasible up to 20% (monthly 1000 <= 2000); 25% needs 1250 <= 2000 so
	// also feasible. Desired 24 months: 10% (|30-24|=6) beats 15% (|20-24|=4)?
	// No: 15% is closer. Closest feasible is 15% at distance 4.
	set := planning.GenerateScenarios(in)
	require.NotNil(t, set.Recommended)
	assert.Equal(t, 0.15, set.Recommended.SavingsRate)
	assert.Equal(t, 20, set.Recommended.TimelineMonths)
}

func TestGenerateScenarios_TieBreakPrefersLowerRate(t *testing.T) {
	set := planning.GenerateScenarios(planning.ScenarioInput{
		MonthlyIncome:  decimal.NewFromInt(1000),
		MonthlySurplus: decimal.NewFromInt(1000),
		TargetAmount:   decimal.NewFromInt(1200),
		CurrentSaved:   decimal.Zero,
		// 10% saves 100/mo (12 months), 20% saves 200/mo (6 months).
		// Desired 9 months leaves both at distance 3.
		CandidateRates:        []float64{0.10, 0.20},
		DesiredTimelineMonths: 9,
	})
	require.NotNil(t, set.Recommended)
	assert.Equal(t, 0.10, set.Recommended.SavingsRate)
}

func TestGenerateScenarios_InfeasibleScenariosKeptRecommendationNil(t *testing.T) {
	set := planning.GenerateScenarios(planning.ScenarioInput{
		MonthlyIncome:         decimal.NewFromInt(5000),
		MonthlySurplus:        decimal.NewFromInt(10), // nothing fits
		TargetAmount:          decimal.NewFromInt(20000),
		CurrentSaved:          decimal.Zero,
		CandidateRates:        []float64{0.05, 0.10},
		DesiredTimelineMonths: 12,
	})

	require.Len(t, set.Scenarios, 2)
	for _, s := range set.Scenarios {
		assert.False(t, s.Feasible)
		assert.True(t, s.RemainingSurplus.IsNegative())
	}
	assert.Nil(t, set.Recommended)
}

func TestGenerateScenarios_TargetAlreadyReachedExcludesAll(t *testing.T) {
	set := planning.GenerateScenarios(planning.ScenarioInput{
		MonthlyIncome:         decimal.NewFromInt(5000),
		MonthlySurplus:        decimal.NewFromInt(2000),
		TargetAmount:          decimal.NewFromInt(10000),
		CurrentSaved:          decimal.NewFromInt(12000),
		CandidateRates:        []float64{0.05, 0.10},
		DesiredTimelineMonths: 12,
	})
	assert.Empty(t, set.Scenarios)
	assert.Nil(t, set.Recommended)
}

func TestGenerateScenarios_ZeroIncomeExcludesAll(t *testing.T) {
	set := planning.GenerateScenarios(planning.ScenarioInput{
		MonthlyIncome:         decimal.Zero,
		MonthlySurplus:        decimal.NewFromInt(500),
		TargetAmount:          decimal.NewFromInt(1000),
		CurrentSaved:          decimal.Zero,
		CandidateRates:        []float64{0.05, 0.10},
		DesiredTimelineMonths: 12,
	})
	assert.Empty(t, set.Scenarios)
	assert.Nil(t, set.Recommended)
}

func TestGenerateScenarios_DefaultRatesWhenUnset(t *testing.T) {
	in := scenarioInput()
	in.CandidateRates = nil
	set := planning.GenerateScenarios(in)
	assert.Len(t, set.Scenarios, len(planning.DefaultCandidateRates))
}

func TestGenerateScenarios_UnsortedRatesAreSorted(t *testing.T) {
	in := scenarioInput()
	in.CandidateRates = []float64{0.25, 0.05, 0.10}
	set := planning.GenerateScenarios(in)
	require.Len(t, set.Scenarios, 3)
	assert.Equal(t, 0.05, set.Scenarios[0].SavingsRate)
	assert.Equal(t, 0.25, set.Scenarios[2].SavingsRate)
}
