package planning_test

import (
	"testing"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	"github.com/finsight/backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisGoal(current, target float64, targetDate time.Time) domain.Goal {
	return domain.Goal{
		GoalID:        "goal-1",
		UserID:        "user-1",
		CurrentAmount: decimal.NewFromFloat(current),
		TargetAmount:  decimal.NewFromFloat(target),
		TargetDate:    targetDate,
	}
}

func history(amounts ...float64) []domain.GoalContribution {
	out := make([]domain.GoalContribution, len(amounts))
	for i, a := range amounts {
		out[i] = domain.GoalContribution{
			ContributionID: "contrib",
			GoalID:         "goal-1",
			Amount:         decimal.NewFromFloat(a),
			Month:          date(2025, time.January, 1).AddDate(0, i, 0),
		}
	}
	return out
}

func TestAnalyzeContributions_EmptyHistory(t *testing.T) {
	analysis, err := planning.AnalyzeContributions(nil,
		analysisGoal(0, 10000, date(2026, time.June, 1)), date(2025, time.June, 1))
	require.NoError(t, err)

	assert.True(t, analysis.AverageMonthly.IsZero())
	assert.Zero(t, analysis.Variance)
	assert.Zero(t, analysis.ConsistencyScore)
	assert.Equal(t, domain.ConsistencyPoor, analysis.Consistency)
	assert.Equal(t, domain.TrendStable, analysis.Trend)
	assert.False(t, analysis.IsOnTrack)
	assert.Nil(t, analysis.ProjectedCompletionDate)
}

func TestAnalyzeContributions_PerfectlyConsistentSeries(t *testing.T) {
	analysis, err := planning.AnalyzeContributions(history(500, 500, 500, 500, 500, 500),
		analysisGoal(3000, 10000, date(2027, time.January, 1)), date(2025, time.July, 1))
	require.NoError(t, err)

	assert.True(t, analysis.AverageMonthly.Equal(decimal.NewFromInt(500)), "got %s", analysis.AverageMonthly)
	assert.Zero(t, analysis.Variance)
	assert.InDelta(t, 100, analysis.ConsistencyScore, 1e-9)
	assert.Equal(t, domain.ConsistencyExcellent, analysis.Consistency)
	assert.Equal(t, domain.TrendStable, analysis.Trend)
}

func TestAnalyzeContributions_ConsistencyClassification(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    domain.ConsistencyRating
	}{
		{
			name:    "tight series is excellent",
			amounts: []float64{495, 500, 505, 500, 495, 505},
			want:    domain.ConsistencyExcellent,
		},
		{
			name:    "wildly uneven series is poor",
			amounts: []float64{10, 900, 15, 850, 5, 950},
			want:    domain.ConsistencyPoor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := planning.AnalyzeContributions(history(tt.amounts...),
				analysisGoal(0, 100000, date(2030, time.January, 1)), date(2025, time.July, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, analysis.Consistency)
		})
	}
}

func TestAnalyzeContributions_Trend(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    domain.TrendDirection
	}{
		{
			name:    "fewer than six contributions defaults to stable",
			amounts: []float64{100, 900, 100, 900, 100},
			want:    domain.TrendStable,
		},
		{
			name:    "rising series",
			amounts: []float64{100, 100, 100, 200, 200, 200},
			want:    domain.TrendIncreasing,
		},
		{
			name:    "falling series",
			amounts: []float64{300, 300, 300, 100, 100, 100},
			want:    domain.TrendDecreasing,
		},
		{
			name:    "flat but erratic series is volatile",
			amounts: []float64{50, 500, 50, 60, 480, 60},
			want:    domain.TrendVolatile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := planning.AnalyzeContributions(history(tt.amounts...),
				analysisGoal(0, 1000000, date(2030, time.January, 1)), date(2025, time.December, 1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, analysis.Trend)
		})
	}
}

func TestAnalyzeContributions_OnTrack(t *testing.T) {
	now := date(2025, time.June, 1)

	t.Run("average carries the goal to target in time", func(t *testing.T) {
		// 2000 saved, 10000 target, 500/month average, 24 months left:
		// 2000 + 500*24 = 14000 >= 10000.
		analysis, err := planning.AnalyzeContributions(history(500, 500, 500, 500),
			analysisGoal(2000, 10000, date(2027, time.June, 1)), now)
		require.NoError(t, err)
		assert.True(t, analysis.IsOnTrack)
	})

	t.Run("too little runway", func(t *testing.T) {
		// 2000 + 500*4 = 4000 < 10000.
		analysis, err := planning.AnalyzeContributions(history(500, 500, 500, 500),
			analysisGoal(2000, 10000, date(2025, time.October, 1)), now)
		require.NoError(t, err)
		assert.False(t, analysis.IsOnTrack)
	})

	t.Run("target date already passed", func(t *testing.T) {
		analysis, err := planning.AnalyzeContributions(history(500, 500, 500, 500),
			analysisGoal(2000, 10000, date(2025, time.January, 1)), now)
		require.NoError(t, err)
		assert.False(t, analysis.IsOnTrack)
	})
}

func TestAnalyzeContributions_ProjectedCompletionDate(t *testing.T) {
	now := date(2025, time.June, 15)

	// 4000 remaining at 500/month: eight more months.
	analysis, err := planning.AnalyzeContributions(history(500, 500, 500, 500),
		analysisGoal(6000, 10000, date(2026, time.June, 1)), now)
	require.NoError(t, err)

	require.NotNil(t, analysis.ProjectedCompletionDate)
	assert.True(t, analysis.ProjectedCompletionDate.Equal(date(2026, time.February, 1)),
		"got %s", analysis.ProjectedCompletionDate)
}

func TestAnalyzeContributions_InvalidInputs(t *testing.T) {
	t.Run("negative target amount", func(t *testing.T) {
		_, err := planning.AnalyzeContributions(history(100),
			analysisGoal(0, -5, date(2026, time.January, 1)), date(2025, time.June, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("non-positive contribution", func(t *testing.T) {
		bad := history(100)
		bad[0].Amount = decimal.Zero
		_, err := planning.AnalyzeContributions(bad,
			analysisGoal(0, 1000, date(2026, time.January, 1)), date(2025, time.June, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
