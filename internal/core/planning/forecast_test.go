package planning_test

import (
	"testing"

	"github.com/finsight/backend/internal/apperrors"
	"github.com/finsight/backend/internal/core/planning"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestForecastAsset_ProjectedPrice(t *testing.T) {
	// 80000 * 1.057^2 = 89379.92 over a 24-month horizon.
	forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice:  decimal.NewFromInt(80000),
		AnnualRate:    0.057,
		HorizonMonths: 24,
	})
	require.NoError(t, err)

	price, _ := forecast.ProjectedPrice.Float64()
	assert.InDelta(t, 89379.92, price, 0.01)
	assert.Nil(t, forecast.RequiredDownPayment)
	assert.Nil(t, forecast.MonthlyRequiredSavings)
	assert.Equal(t, 100.0, forecast.AffordabilityScore)
}

func TestForecastAsset_NegativeRateLowersPrice(t *testing.T) {
	forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice:  decimal.NewFromInt(30000),
		AnnualRate:    -0.10,
		HorizonMonths: 12,
	})
	require.NoError(t, err)
	price, _ := forecast.ProjectedPrice.Float64()
	assert.InDelta(t, 27000, price, 0.01)
}

func TestForecastAsset_ZeroHorizonKeepsPrice(t *testing.T) {
	forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice: decimal.NewFromInt(50000),
		AnnualRate:   0.08,
	})
	require.NoError(t, err)
	assert.True(t, forecast.ProjectedPrice.Equal(decimal.NewFromInt(50000)), "got %s", forecast.ProjectedPrice)
}

func TestForecastAsset_DownPaymentAndMonthlySavings(t *testing.T) {
	forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice:     decimal.NewFromInt(100000),
		AnnualRate:       0,
		HorizonMonths:    12,
		DownPaymentRatio: floatPtr(0.20),
		CurrentAmount:    decimal.NewFromInt(8000),
		MonthsRemaining:  12,
		MonthlySurplus:   decimal.NewFromInt(2000),
	})
	require.NoError(t, err)

	require.NotNil(t, forecast.RequiredDownPayment)
	assert.True(t, forecast.RequiredDownPayment.Equal(decimal.NewFromInt(20000)),
		"down payment got %s", forecast.RequiredDownPayment)

	require.NotNil(t, forecast.MonthlyRequiredSavings)
	assert.True(t, forecast.MonthlyRequiredSavings.Equal(decimal.NewFromInt(1000)),
		"monthly savings got %s", forecast.MonthlyRequiredSavings)

	// 1000 needed of 2000 available: halfway up the affordability range.
	assert.InDelta(t, 50, forecast.AffordabilityScore, 1e-6)
}

func TestForecastAsset_AlreadySavedEnough(t *testing.T) {
	forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice:     decimal.NewFromInt(50000),
		HorizonMonths:    6,
		DownPaymentRatio: floatPtr(0.10),
		CurrentAmount:    decimal.NewFromInt(9000),
		MonthsRemaining:  6,
		MonthlySurplus:   decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	// Required 5000, saved 9000: nothing left to save per month.
	require.NotNil(t, forecast.MonthlyRequiredSavings)
	assert.True(t, forecast.MonthlyRequiredSavings.IsZero(), "got %s", forecast.MonthlyRequiredSavings)
	assert.Equal(t, 100.0, forecast.AffordabilityScore)
}

func TestForecastAsset_AffordabilitySaturation(t *testing.T) {
	t.Run("required exceeds surplus", func(t *testing.T) {
		forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
			InitialPrice:     decimal.NewFromInt(100000),
			HorizonMonths:    12,
			DownPaymentRatio: floatPtr(0.50),
			MonthsRemaining:  10,
			MonthlySurplus:   decimal.NewFromInt(1000),
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, forecast.AffordabilityScore)
	})

	t.Run("no surplus at all", func(t *testing.T) {
		forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
			InitialPrice:     decimal.NewFromInt(10000),
			HorizonMonths:    12,
			DownPaymentRatio: floatPtr(0.10),
			MonthsRemaining:  12,
			MonthlySurplus:   decimal.Zero,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, forecast.AffordabilityScore)
	})
}

func TestForecastAsset_MonthsRemainingFloor(t *testing.T) {
	forecast, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice:     decimal.NewFromInt(12000),
		HorizonMonths:    0,
		DownPaymentRatio: floatPtr(1.0),
		MonthsRemaining:  0, // clamped to one month
		MonthlySurplus:   decimal.NewFromInt(20000),
	})
	require.NoError(t, err)
	require.NotNil(t, forecast.MonthlyRequiredSavings)
	assert.True(t, forecast.MonthlyRequiredSavings.Equal(decimal.NewFromInt(12000)),
		"got %s", forecast.MonthlyRequiredSavings)
}

func TestForecastAsset_InvalidInputs(t *testing.T) {
	_, err := planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice: decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = planning.ForecastAsset(planning.AssetForecastInput{
		InitialPrice:  decimal.NewFromInt(1000),
		HorizonMonths: -3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
