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

func entry(kind domain.FlowKind, amount float64, on time.Time) domain.OneTimeEntry {
	return domain.OneTimeEntry{
		EntryID: "entry-1",
		UserID:  "user-1",
		Kind:    kind,
		Amount:  decimal.NewFromFloat(amount),
		Date:    on,
	}
}

func contribution(amount float64, month time.Time) domain.GoalContribution {
	return domain.GoalContribution{
		ContributionID: "contrib-1",
		GoalID:         "goal-1",
		Amount:         decimal.NewFromFloat(amount),
		Month:          month,
	}
}

func TestComputeBalance_IncomeAndExpenseStreams(t *testing.T) {
	// Starting 1000, monthly income 3000 and monthly expense 2000, both
	// active January through the March as-of date: 1000 + 3*3000 - 3*2000.
	streams := []domain.CashFlowStream{
		stream(domain.FlowIncome, 3000, domain.FrequencyMonthly, date(2025, time.January, 1), nil),
		stream(domain.FlowExpense, 2000, domain.FrequencyMonthly, date(2025, time.January, 1), nil),
	}

	got, err := planning.ComputeBalance(decimal.NewFromInt(1000), streams, nil, nil, date(2025, time.March, 31))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(4000)), "got %s", got)
}

func TestComputeBalance_NoInputsReturnsStartingBalance(t *testing.T) {
	starting := decimal.NewFromFloat(1234.56)
	got, err := planning.ComputeBalance(starting, nil, nil, nil, date(2025, time.June, 1))
	require.NoError(t, err)
	assert.True(t, got.Equal(starting), "got %s", got)
}

func TestComputeBalance_StreamBeforeActiveFromContributesZero(t *testing.T) {
	streams := []domain.CashFlowStream{
		stream(domain.FlowIncome, 5000, domain.FrequencyMonthly, date(2025, time.September, 1), nil),
	}
	got, err := planning.ComputeBalance(decimal.NewFromInt(100), streams, nil, nil, date(2025, time.March, 31))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "got %s", got)
}

func TestComputeBalance_DeactivatedStreamIsSkipped(t *testing.T) {
	s := stream(domain.FlowIncome, 3000, domain.FrequencyMonthly, date(2025, time.January, 1), nil)
	s.IsActive = false
	got, err := planning.ComputeBalance(decimal.NewFromInt(500), []domain.CashFlowStream{s}, nil, nil, date(2025, time.June, 30))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(500)), "got %s", got)
}

func TestComputeBalance_OneTimeEntriesRespectAsOf(t *testing.T) {
	entries := []domain.OneTimeEntry{
		entry(domain.FlowIncome, 800, date(2025, time.February, 14)),
		entry(domain.FlowExpense, 300, date(2025, time.March, 1)),
		entry(domain.FlowIncome, 9999, date(2025, time.July, 1)), // after as-of, ignored
	}
	got, err := planning.ComputeBalance(decimal.NewFromInt(1000), nil, entries, nil, date(2025, time.March, 31))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1500)), "got %s", got)
}

func TestComputeBalance_ContributionsSubtract(t *testing.T) {
	contributions := []domain.GoalContribution{
		contribution(250, date(2025, time.January, 1)),
		contribution(250, date(2025, time.February, 1)),
		contribution(400, date(2025, time.August, 1)), // after as-of month, ignored
	}
	got, err := planning.ComputeBalance(decimal.NewFromInt(2000), nil, nil, contributions, date(2025, time.March, 31))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(1500)), "got %s", got)
}

func TestComputeBalance_OrderIndependent(t *testing.T) {
	streams := []domain.CashFlowStream{
		stream(domain.FlowIncome, 3210.55, domain.FrequencyMonthly, date(2025, time.January, 5), nil),
		stream(domain.FlowExpense, 1899.99, domain.FrequencyMonthly, date(2025, time.January, 1), nil),
		stream(domain.FlowIncome, 75.25, domain.FrequencyWeekly, date(2025, time.February, 10), nil),
	}
	entries := []domain.OneTimeEntry{
		entry(domain.FlowExpense, 412.34, date(2025, time.January, 20)),
		entry(domain.FlowIncome, 1500.01, date(2025, time.March, 2)),
	}
	asOf := date(2025, time.April, 30)

	forward, err := planning.ComputeBalance(decimal.NewFromInt(1000), streams, entries, nil, asOf)
	require.NoError(t, err)

	reversedStreams := []domain.CashFlowStream{streams[2], streams[0], streams[1]}
	reversedEntries := []domain.OneTimeEntry{entries[1], entries[0]}
	backward, err := planning.ComputeBalance(decimal.NewFromInt(1000), reversedStreams, reversedEntries, nil, asOf)
	require.NoError(t, err)

	assert.True(t, forward.Equal(backward), "forward %s != backward %s", forward, backward)
}

func TestComputeBalance_PropagatesValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		streams       []domain.CashFlowStream
		entries       []domain.OneTimeEntry
		contributions []domain.GoalContribution
	}{
		{
			name: "inverted stream window",
			streams: []domain.CashFlowStream{
				stream(domain.FlowIncome, 100, domain.FrequencyMonthly,
					date(2025, time.May, 1), timePtr(date(2025, time.January, 1))),
			},
		},
		{
			name: "one-time frequency stream",
			streams: []domain.CashFlowStream{
				stream(domain.FlowIncome, 100, domain.FrequencyOneTime, date(2025, time.January, 1), nil),
			},
		},
		{
			name:    "negative entry amount",
			entries: []domain.OneTimeEntry{entry(domain.FlowExpense, -50, date(2025, time.January, 1))},
		},
		{
			name:          "non-positive contribution",
			contributions: []domain.GoalContribution{contribution(0, date(2025, time.January, 1))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := planning.ComputeBalance(decimal.Zero, tt.streams, tt.entries, tt.contributions, date(2025, time.December, 31))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestComputeBalance_RoundsFinalResultOnly(t *testing.T) {
	// Three weekly streams whose monthly equivalents each carry long
	// fractions; only the final sum is rounded to cents.
	streams := []domain.CashFlowStream{
		stream(domain.FlowIncome, 33.33, domain.FrequencyWeekly, date(2025, time.January, 1), nil),
		stream(domain.FlowIncome, 66.67, domain.FrequencyWeekly, date(2025, time.January, 1), nil),
		stream(domain.FlowExpense, 50.00, domain.FrequencyWeekly, date(2025, time.January, 1), nil),
	}
	got, err := planning.ComputeBalance(decimal.Zero, streams, nil, nil, date(2025, time.January, 31))
	require.NoError(t, err)

	// One month of (33.33+66.67-50) weekly = 50 * 365.25/7/12 = 217.410714...
	assert.True(t, got.Equal(decimal.NewFromFloat(217.41)), "got %s", got)
	assert.True(t, got.Exponent() >= -2, "result rounded beyond cents: %s", got)
}
