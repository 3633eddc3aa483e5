package planning

import (
	"math"
	"sort"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultCandidateRates is the standard ladder of savings rates to evaluate.
// Callers normally override it from configuration.
var DefaultCandidateRates = []float64{0.01, 0.025, 0.05, 0.10, 0.15, 0.20, 0.25}

// ScenarioInput describes a savings target and the cash available to chase it.
type ScenarioInput struct {
	MonthlyIncome  decimal.Decimal
	MonthlySurplus decimal.Decimal
	TargetAmount   decimal.Decimal
	CurrentSaved   decimal.Decimal
	// CandidateRates are the savings rates to evaluate, as fractions of
	// monthly income. Empty falls back to DefaultCandidateRates.
	CandidateRates []float64
	// DesiredTimelineMonths anchors the recommendation.
	DesiredTimelineMonths int
}

// ScenarioSet is the evaluated candidate scenarios plus the recommended one,
// nil when nothing is feasible. Callers must present a "not feasible" state
// rather than guess when Recommended is nil.
type ScenarioSet struct {
	Scenarios   []domain.Scenario
	Recommended *domain.Scenario
}

// GenerateScenarios evaluates each candidate savings rate against the target.
// Rates yielding a non-positive or unbounded timeline are excluded outright,
// not marked infeasible. The recommendation minimizes the distance to the
// desired timeline among feasible scenarios; ties go to the lower savings
// rate, preferring less lifestyle disruption.
func GenerateScenarios(in ScenarioInput) ScenarioSet {
	rates := in.CandidateRates
	if len(rates) == 0 {
		rates = DefaultCandidateRates
	}
	rates = append([]float64(nil), rates...)
	sort.Float64s(rates)

	remaining := in.TargetAmount.Sub(in.CurrentSaved)
	set := ScenarioSet{Scenarios: []domain.Scenario{}}
	bestDistance := math.MaxInt

	for _, rate := range rates {
		monthlyAmount := in.MonthlyIncome.Mul(decimal.NewFromFloat(rate)).Round(2)
		if !monthlyAmount.IsPositive() {
			continue
		}
		timeline := int(remaining.Div(monthlyAmount).Ceil().IntPart())
		if timeline <= 0 {
			continue
		}

		s := domain.Scenario{
			SavingsRate:      rate,
			MonthlyAmount:    monthlyAmount,
			TimelineMonths:   timeline,
			Feasible:         monthlyAmount.LessThanOrEqual(in.MonthlySurplus),
			RemainingSurplus: in.MonthlySurplus.Sub(monthlyAmount),
		}
		set.Scenarios = append(set.Scenarios, s)

		if s.Feasible {
			distance := timeline - in.DesiredTimelineMonths
			if distance < 0 {
				distance = -distance
			}
			// Strictly better only: on a tie the earlier (lower) rate wins.
			if distance < bestDistance {
				bestDistance = distance
				recommended := s
				set.Recommended = &recommended
			}
		}
	}

	return set
}
