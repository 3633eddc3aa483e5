package planning

import (
	"math"
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Consistency classification thresholds on the [0,100] consistency score.
const (
	consistencyExcellentMin = 90
	consistencyGoodMin      = 75
	consistencyFairMin      = 50
	// Below this score an otherwise flat series is called volatile.
	volatileScoreCeiling = 60
	// Trend thresholds on the relative change between the first and last
	// three contributions.
	trendChangeThreshold = 0.20
	trendSampleSize      = 3
)

// AnalyzeContributions derives consistency, trend, and on-track status from a
// goal's contribution history, assumed sorted ascending by month. An empty
// history yields zeroed statistics, a poor rating, and off-track status.
func AnalyzeContributions(
	history []domain.GoalContribution,
	goal domain.Goal,
	now time.Time,
) (domain.ContributionAnalysis, error) {
	if err := goal.Validate(); err != nil {
		return domain.ContributionAnalysis{}, err
	}
	for _, c := range history {
		if err := c.Validate(); err != nil {
			return domain.ContributionAnalysis{}, err
		}
	}

	if len(history) == 0 {
		return domain.ContributionAnalysis{
			AverageMonthly: decimal.Zero,
			Consistency:    domain.ConsistencyPoor,
			Trend:          domain.TrendStable,
			IsOnTrack:      false,
		}, nil
	}

	amounts := make([]float64, len(history))
	sum := decimal.Zero
	for i, c := range history {
		amounts[i], _ = c.Amount.Float64()
		sum = sum.Add(c.Amount)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(history))))
	avgF, _ := average.Float64()

	stdDev := populationStdDev(amounts, avgF)
	score := 0.0
	if avgF > 0 {
		score = clamp(100-(stdDev/avgF)*100, 0, 100)
	}

	analysis := domain.ContributionAnalysis{
		AverageMonthly:   average.Round(2),
		Variance:         stdDev,
		ConsistencyScore: score,
		Consistency:      classifyConsistency(score),
		Trend:            classifyTrend(amounts, score),
	}

	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	monthsToTarget := MonthsBetween(now, goal.TargetDate)
	if monthsToTarget < 0 {
		monthsToTarget = 0
	}
	projectedSaved := goal.CurrentAmount.Add(average.Mul(decimal.NewFromInt(int64(monthsToTarget))))
	analysis.IsOnTrack = projectedSaved.GreaterThanOrEqual(goal.TargetAmount)

	if average.IsPositive() {
		monthsNeeded := 0
		if remaining.IsPositive() {
			monthsNeeded = int(remaining.Div(average).Ceil().IntPart())
		}
		completion := AddMonths(now, monthsNeeded)
		analysis.ProjectedCompletionDate = &completion
	}

	return analysis, nil
}

func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func classifyConsistency(score float64) domain.ConsistencyRating {
	switch {
	case score >= consistencyExcellentMin:
		return domain.ConsistencyExcellent
	case score >= consistencyGoodMin:
		return domain.ConsistencyGood
	case score >= consistencyFairMin:
		return domain.ConsistencyFair
	default:
		return domain.ConsistencyPoor
	}
}

// classifyTrend compares the mean of the last three contributions to the mean
// of the first three. Series shorter than six contributions default to
// stable: too little history to call a direction.
func classifyTrend(amounts []float64, consistencyScore float64) domain.TrendDirection {
	if len(amounts) < 2*trendSampleSize {
		return domain.TrendStable
	}

	early := meanOf(amounts[:trendSampleSize])
	late := meanOf(amounts[len(amounts)-trendSampleSize:])
	if early == 0 {
		if late > 0 {
			return domain.TrendIncreasing
		}
		return domain.TrendStable
	}

	change := (late - early) / early
	switch {
	case change > trendChangeThreshold:
		return domain.TrendIncreasing
	case change < -trendChangeThreshold:
		return domain.TrendDecreasing
	case consistencyScore < volatileScoreCeiling:
		return domain.TrendVolatile
	default:
		return domain.TrendStable
	}
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
