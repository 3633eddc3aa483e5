package planning

import (
	"fmt"
	"time"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// weeksPerMonth converts a weekly amount to its monthly equivalent:
// (365.25 / 7) weeks per year, divided by 12 months.
var weeksPerMonth = decimal.NewFromFloat(365.25).
	Div(decimal.NewFromInt(7)).
	Div(decimal.NewFromInt(12))

var twelve = decimal.NewFromInt(12)

// AccrualResolution is the result of resolving a recurring stream against an
// as-of date: the stream's monthly-equivalent amount and every calendar month
// it contributed to, inclusive and in ascending order.
type AccrualResolution struct {
	MonthlyAmount decimal.Decimal
	Months        []time.Time // Month starts, UTC
}

// Total returns the stream's full contribution across its accrual window.
func (r AccrualResolution) Total() decimal.Decimal {
	return r.MonthlyAmount.Mul(decimal.NewFromInt(int64(len(r.Months))))
}

// MonthlyEquivalent normalizes a stream's per-occurrence amount to a monthly
// figure. ONE_TIME streams are rejected; one-off amounts belong in
// OneTimeEntry.
func MonthlyEquivalent(s domain.CashFlowStream) (decimal.Decimal, error) {
	switch s.Frequency {
	case domain.FrequencyWeekly:
		return s.Amount.Mul(weeksPerMonth), nil
	case domain.FrequencyYearly:
		return s.Amount.Div(twelve), nil
	case domain.FrequencyMonthly:
		return s.Amount, nil
	case domain.FrequencyOneTime:
		return decimal.Zero, fmt.Errorf("%w: stream %s has ONE_TIME frequency, record it as a one-time entry",
			apperrors.ErrValidation, s.StreamID)
	default:
		return decimal.Zero, fmt.Errorf("%w: stream %s has unknown frequency %q",
			apperrors.ErrValidation, s.StreamID, s.Frequency)
	}
}

// ResolveAccrual computes the months a stream was active through asOf. A month
// m counts when activeFrom <= end-of-month(m), activeUntil (if set) >=
// start-of-month(m), and m is not after asOf's month. A stream starting or
// ending mid-month counts for that whole month; there is no pro-rating.
func ResolveAccrual(s domain.CashFlowStream, asOf time.Time) (AccrualResolution, error) {
	if err := s.Validate(); err != nil {
		return AccrualResolution{}, err
	}
	monthly, err := MonthlyEquivalent(s)
	if err != nil {
		return AccrualResolution{}, err
	}

	first := MonthStart(s.ActiveFrom)
	last := MonthStart(asOf)
	if s.ActiveUntil != nil {
		if end := MonthStart(*s.ActiveUntil); end.Before(last) {
			last = end
		}
	}
	if first.After(last) {
		return AccrualResolution{MonthlyAmount: monthly}, nil
	}

	months := make([]time.Time, 0, MonthsBetween(first, last)+1)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return AccrualResolution{MonthlyAmount: monthly, Months: months}, nil
}
