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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func stream(kind domain.FlowKind, amount float64, freq domain.Frequency, from time.Time, until *time.Time) domain.CashFlowStream {
	return domain.CashFlowStream{
		StreamID:    "stream-1",
		UserID:      "user-1",
		Kind:        kind,
		Amount:      decimal.NewFromFloat(amount),
		Frequency:   freq,
		ActiveFrom:  from,
		ActiveUntil: until,
		IsActive:    true,
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		frequency domain.Frequency
		amount    float64
		want      float64
	}{
		{
			name:      "monthly amount passes through unchanged",
			frequency: domain.FrequencyMonthly,
			amount:    2500,
			want:      2500,
		},
		{
			name:      "weekly amount scales by 365.25/7/12",
			frequency: domain.FrequencyWeekly,
			amount:    100,
			want:      100 * 365.25 / 7 / 12,
		},
		{
			name:      "yearly amount divides by twelve",
			frequency: domain.FrequencyYearly,
			amount:    12000,
			want:      1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stream(domain.FlowIncome, tt.amount, tt.frequency, date(2025, time.January, 1), nil)
			got, err := planning.MonthlyEquivalent(s)
			require.NoError(t, err)
			gotF, _ := got.Float64()
			assert.InDelta(t, tt.want, gotF, 1e-9)
		})
	}
}

func TestMonthlyEquivalent_RejectsOneTime(t *testing.T) {
	s := stream(domain.FlowIncome, 500, domain.FrequencyOneTime, date(2025, time.January, 1), nil)
	_, err := planning.MonthlyEquivalent(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolveAccrual_Window(t *testing.T) {
	tests := []struct {
		name       string
		from       time.Time
		until      *time.Time
		asOf       time.Time
		wantMonths []time.Time
	}{
		{
			name:       "full window through as-of month",
			from:       date(2025, time.January, 1),
			asOf:       date(2025, time.March, 31),
			wantMonths: []time.Time{date(2025, time.January, 1), date(2025, time.February, 1), date(2025, time.March, 1)},
		},
		{
			name:       "mid-month start counts that whole month",
			from:       date(2025, time.January, 20),
			asOf:       date(2025, time.February, 10),
			wantMonths: []time.Time{date(2025, time.January, 1), date(2025, time.February, 1)},
		},
		{
			name:       "mid-month end counts that whole month",
			from:       date(2025, time.January, 1),
			until:      timePtr(date(2025, time.February, 3)),
			asOf:       date(2025, time.June, 30),
			wantMonths: []time.Time{date(2025, time.January, 1), date(2025, time.February, 1)},
		},
		{
			name:       "as-of before activeFrom yields no months",
			from:       date(2025, time.June, 1),
			asOf:       date(2025, time.March, 15),
			wantMonths: []time.Time{},
		},
		{
			name:       "single month window",
			from:       date(2025, time.April, 10),
			until:      timePtr(date(2025, time.April, 20)),
			asOf:       date(2025, time.December, 31),
			wantMonths: []time.Time{date(2025, time.April, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stream(domain.FlowIncome, 1000, domain.FrequencyMonthly, tt.from, tt.until)
			res, err := planning.ResolveAccrual(s, tt.asOf)
			require.NoError(t, err)
			assert.Len(t, res.Months, len(tt.wantMonths))
			for i, want := range tt.wantMonths {
				assert.True(t, res.Months[i].Equal(want), "month %d: got %s want %s", i, res.Months[i], want)
			}
		})
	}
}

func TestResolveAccrual_InvertedWindowFails(t *testing.T) {
	s := stream(domain.FlowIncome, 1000, domain.FrequencyMonthly,
		date(2025, time.June, 1), timePtr(date(2025, time.January, 1)))
	_, err := planning.ResolveAccrual(s, date(2025, time.December, 31))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccrualResolution_Total(t *testing.T) {
	s := stream(domain.FlowIncome, 3000, domain.FrequencyMonthly, date(2025, time.January, 1), nil)
	res, err := planning.ResolveAccrual(s, date(2025, time.March, 15))
	require.NoError(t, err)
	assert.True(t, res.Total().Equal(decimal.NewFromInt(9000)), "got %s", res.Total())
}
