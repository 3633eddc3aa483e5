package planning_test

import (
	"testing"
	"time"

	"github.com/finsight/backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectForward_LinearBalances(t *testing.T) {
	points := planning.ProjectForward(
		date(2025, time.March, 15),
		decimal.NewFromInt(10000),
		decimal.NewFromInt(5000),
		decimal.NewFromInt(3500),
		6,
		planning.DefaultConfidenceParams(),
	)

	require.Len(t, points, 6)
	for i, p := range points {
		m := i + 1
		assert.Equal(t, m, p.MonthIndex)
		assert.True(t, p.Month.Equal(date(2025, time.March, 1).AddDate(0, m, 0)))
		wantBalance := decimal.NewFromInt(int64(10000 + 1500*m))
		assert.True(t, p.ProjectedBalance.Equal(wantBalance),
			"month %d: got %s want %s", m, p.ProjectedBalance, wantBalance)
		assert.True(t, p.ProjectedIncome.Equal(decimal.NewFromInt(5000)))
		assert.True(t, p.ProjectedExpenses.Equal(decimal.NewFromInt(3500)))
	}
}

func TestProjectForward_ConfidenceDecay(t *testing.T) {
	params := planning.DefaultConfidenceParams()
	points := planning.ProjectForward(
		date(2025, time.January, 1),
		decimal.Zero, decimal.Zero, decimal.Zero,
		36,
		params,
	)
	require.Len(t, points, 36)

	prev := params.Initial
	for _, p := range points {
		assert.LessOrEqual(t, p.ConfidenceLevel, prev,
			"confidence rose at month %d", p.MonthIndex)
		assert.GreaterOrEqual(t, p.ConfidenceLevel, params.Floor)
		assert.LessOrEqual(t, p.ConfidenceLevel, params.Initial)
		prev = p.ConfidenceLevel
	}

	// 0.95 - 0.03*15 = 0.50; everything past month 15 sits on the floor.
	assert.InDelta(t, params.Floor, points[14].ConfidenceLevel, 1e-9)
	assert.InDelta(t, params.Floor, points[35].ConfidenceLevel, 1e-9)
	assert.InDelta(t, 0.92, points[0].ConfidenceLevel, 1e-9)
}

func TestProjectForward_NegativeNet(t *testing.T) {
	points := planning.ProjectForward(
		date(2025, time.January, 1),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(2000),
		decimal.NewFromInt(2600),
		3,
		planning.DefaultConfidenceParams(),
	)
	require.Len(t, points, 3)
	assert.True(t, points[2].ProjectedBalance.Equal(decimal.NewFromInt(-800)),
		"got %s", points[2].ProjectedBalance)
}

func TestProjectForward_NonPositiveHorizon(t *testing.T) {
	for _, horizon := range []int{0, -5} {
		points := planning.ProjectForward(
			date(2025, time.January, 1),
			decimal.NewFromInt(100), decimal.Zero, decimal.Zero,
			horizon,
			planning.DefaultConfidenceParams(),
		)
		assert.Empty(t, points)
	}
}
