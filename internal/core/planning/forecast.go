package planning

import (
	"fmt"
	"math"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetForecastInput describes an asset purchase to project.
type AssetForecastInput struct {
	InitialPrice decimal.Decimal
	// AnnualRate is applied as (1+rate)^years; a positive rate raises the
	// projected price.
	AnnualRate    float64
	HorizonMonths int
	// DownPaymentRatio, when set, derives the required down payment and the
	// monthly savings needed to reach it.
	DownPaymentRatio *float64
	// CurrentAmount is what has already been saved toward the purchase.
	CurrentAmount decimal.Decimal
	// MonthsRemaining is the time left to save; values below 1 are treated
	// as 1 month.
	MonthsRemaining int
	// MonthlySurplus is the income left after expenses each month, used for
	// the affordability score.
	MonthlySurplus decimal.Decimal
}

// ForecastAsset projects an asset's price over the horizon and, when a down
// payment is required, the monthly savings effort to afford it. The
// affordability score is 100 when nothing needs saving and falls to 0 as the
// required monthly savings reaches the available surplus.
func ForecastAsset(in AssetForecastInput) (domain.AssetForecast, error) {
	if in.InitialPrice.IsNegative() {
		return domain.AssetForecast{}, fmt.Errorf("%w: initial asset price %s is negative",
			apperrors.ErrValidation, in.InitialPrice)
	}
	if in.HorizonMonths < 0 {
		return domain.AssetForecast{}, fmt.Errorf("%w: forecast horizon %d months is negative",
			apperrors.ErrValidation, in.HorizonMonths)
	}

	price, _ := in.InitialPrice.Float64()
	years := float64(in.HorizonMonths) / 12
	projected := decimal.NewFromFloat(price * math.Pow(1+in.AnnualRate, years)).Round(2)

	forecast := domain.AssetForecast{
		ProjectedPrice:     projected,
		AffordabilityScore: 100,
	}
	if in.DownPaymentRatio == nil {
		return forecast, nil
	}

	required := projected.Mul(decimal.NewFromFloat(*in.DownPaymentRatio)).Round(2)
	forecast.RequiredDownPayment = &required

	monthsRemaining := in.MonthsRemaining
	if monthsRemaining < 1 {
		monthsRemaining = 1
	}
	monthly := required.Sub(in.CurrentAmount).Div(decimal.NewFromInt(int64(monthsRemaining))).Round(2)
	if monthly.IsNegative() {
		monthly = decimal.Zero
	}
	forecast.MonthlyRequiredSavings = &monthly
	forecast.AffordabilityScore = affordabilityScore(monthly, in.MonthlySurplus)
	return forecast, nil
}

// affordabilityScore maps the required/available savings ratio to [0,100],
// saturating at 100 when the ratio <= 0 and 0 when it >= 1.
func affordabilityScore(requiredMonthly, surplus decimal.Decimal) float64 {
	if !requiredMonthly.IsPositive() {
		return 100
	}
	if !surplus.IsPositive() {
		return 0
	}
	ratio, _ := requiredMonthly.Div(surplus).Float64()
	return clamp((1-ratio)*100, 0, 100)
}
