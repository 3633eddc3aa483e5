package planning

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthFlows holds the recurring and one-time totals for a single month.
type MonthFlows struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses.
func (f MonthFlows) Net() decimal.Decimal {
	return f.Income.Sub(f.Expenses)
}

// ComputeMonthFlows totals the income and expenses accruing in the month
// containing m. Streams contribute their monthly equivalent when the month
// falls inside their activity window; entries contribute when dated in the
// month. Deactivated streams contribute nothing.
func ComputeMonthFlows(streams []domain.CashFlowStream, entries []domain.OneTimeEntry, m time.Time) (MonthFlows, error) {
	month := MonthStart(m)
	flows := MonthFlows{Income: decimal.Zero, Expenses: decimal.Zero}

	for _, s := range streams {
		if !s.IsActive {
			continue
		}
		if err := s.Validate(); err != nil {
			return MonthFlows{}, err
		}
		if month.Before(MonthStart(s.ActiveFrom)) {
			continue
		}
		if s.ActiveUntil != nil && month.After(MonthStart(*s.ActiveUntil)) {
			continue
		}
		monthly, err := MonthlyEquivalent(s)
		if err != nil {
			return MonthFlows{}, err
		}
		switch s.Kind {
		case domain.FlowIncome:
			flows.Income = flows.Income.Add(monthly)
		case domain.FlowExpense:
			flows.Expenses = flows.Expenses.Add(monthly)
		}
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return MonthFlows{}, err
		}
		if !SameMonth(e.Date, month) {
			continue
		}
		switch e.Kind {
		case domain.FlowIncome:
			flows.Income = flows.Income.Add(e.Amount)
		case domain.FlowExpense:
			flows.Expenses = flows.Expenses.Add(e.Amount)
		}
	}

	return flows, nil
}
