package planning

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalance reconstructs a user's cash position as of a date:
// the starting balance, plus resolved income accruals, minus resolved expense
// accruals, plus one-time income, minus one-time expenses, minus goal
// contributions set aside through the as-of month.
//
// Summation is order-independent; only the final result is rounded to the
// smallest currency unit. Deactivated streams contribute nothing, including
// their history. Reactivating a stream restores its full history.
func ComputeBalance(
	startingBalance decimal.Decimal,
	streams []domain.CashFlowStream,
	entries []domain.OneTimeEntry,
	contributions []domain.GoalContribution,
	asOf time.Time,
) (decimal.Decimal, error) {
	total := startingBalance

	for _, s := range streams {
		if !s.IsActive {
			continue
		}
		res, err := ResolveAccrual(s, asOf)
		if err != nil {
			return decimal.Zero, err
		}
		if s.Kind == domain.FlowExpense {
			total = total.Sub(res.Total())
		} else {
			total = total.Add(res.Total())
		}
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return decimal.Zero, err
		}
		if e.Date.After(asOf) {
			continue
		}
		if e.Kind == domain.FlowExpense {
			total = total.Sub(e.Amount)
		} else {
			total = total.Add(e.Amount)
		}
	}

	asOfMonth := MonthStart(asOf)
	for _, c := range contributions {
		if err := c.Validate(); err != nil {
			return decimal.Zero, err
		}
		if MonthStart(c.Month).After(asOfMonth) {
			continue
		}
		total = total.Sub(c.Amount)
	}

	return total.Round(2), nil
}
