package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetflow/internal/models"
	"fleetflow/internal/services"
)

func TestComputeFee_StandardLoad(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.NewFromInt(2750),
		LoadType:   models.LoadTypeStandard,
	})
	require.NoError(t, err)

	assert.True(t, quote.FeePercentage.Equal(decimal.NewFromInt(10)), "standard loads carry 10%%, got %s", quote.FeePercentage)
	assert.True(t, quote.DispatchFee.Equal(decimal.RequireFromString("275.00")), "got %s", quote.DispatchFee)
	assert.False(t, quote.OverrideApplied)
}

func TestComputeFee_PerLoadTypeRates(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	cases := []struct {
		loadType models.LoadType
		expected string
	}{
		{models.LoadTypeStandard, "10"},
		{models.LoadTypeExpedited, "12"},
		{models.LoadTypeHazmat, "13"},
		{models.LoadTypeOversize, "12.5"},
		{models.LoadTypeTeam, "11"},
	}

	for _, tc := range cases {
		quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
			LoadAmount: decimal.NewFromInt(1000),
			LoadType:   tc.loadType,
		})
		require.NoError(t, err, "load type %s", tc.loadType)
		assert.True(t, quote.FeePercentage.Equal(decimal.RequireFromString(tc.expected)),
			"load type %s: expected %s, got %s", tc.loadType, tc.expected, quote.FeePercentage)
	}
}

func TestComputeFee_OverrideClampedToBounds(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	high := decimal.NewFromInt(20)
	quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount:         decimal.NewFromInt(1000),
		LoadType:           models.LoadTypeStandard,
		ManagementOverride: &high,
	})
	require.NoError(t, err)
	assert.True(t, quote.FeePercentage.Equal(decimal.NewFromInt(15)), "override above max clamps to 15, got %s", quote.FeePercentage)
	assert.True(t, quote.OverrideApplied)

	low := decimal.NewFromInt(3)
	quote, err = svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount:         decimal.NewFromInt(1000),
		LoadType:           models.LoadTypeStandard,
		ManagementOverride: &low,
	})
	require.NoError(t, err)
	assert.True(t, quote.FeePercentage.Equal(decimal.NewFromInt(5)), "override below min clamps to 5, got %s", quote.FeePercentage)
}

func TestComputeFee_OverridesDisabled(t *testing.T) {
	cfg := testFeeConfig()
	cfg.AllowOverrides = false
	svc := services.NewFeeService(cfg, testLogger())

	override := decimal.NewFromInt(14)
	quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount:         decimal.NewFromInt(1000),
		LoadType:           models.LoadTypeStandard,
		ManagementOverride: &override,
	})
	require.NoError(t, err)
	assert.False(t, quote.OverrideApplied)
	assert.True(t, quote.FeePercentage.Equal(decimal.NewFromInt(10)))
}

func TestComputeFee_UnknownLoadTypeFallsBack(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.NewFromInt(1000),
		LoadType:   models.LoadType("flatbed"),
	})
	require.NoError(t, err)
	assert.True(t, quote.FeePercentage.Equal(decimal.NewFromInt(10)), "unknown types use the default percentage")
}

func TestComputeFee_UnknownLoadTypeStrictMode(t *testing.T) {
	cfg := testFeeConfig()
	cfg.StrictLoadTypes = true
	svc := services.NewFeeService(cfg, testLogger())

	_, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.NewFromInt(1000),
		LoadType:   models.LoadType("flatbed"),
	})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "load_type")
}

func TestComputeFee_ZeroAmountQuotesZeroFee(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.Zero,
		LoadType:   models.LoadTypeStandard,
	})
	require.NoError(t, err)

	assert.True(t, quote.DispatchFee.IsZero(), "got %s", quote.DispatchFee)
	assert.True(t, quote.FeePercentage.Equal(decimal.NewFromInt(10)))
}

func TestComputeFee_NegativeAmount(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	_, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.NewFromInt(-100),
		LoadType:   models.LoadTypeStandard,
	})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "load_amount")
}

func TestComputeFee_RoundsHalfUpToCents(t *testing.T) {
	svc := services.NewFeeService(testFeeConfig(), testLogger())

	// 1234.56 * 12.5% = 154.32, and 333.33 * 10% = 33.333 -> 33.33
	quote, err := svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.RequireFromString("333.33"),
		LoadType:   models.LoadTypeStandard,
	})
	require.NoError(t, err)
	assert.True(t, quote.DispatchFee.Equal(decimal.RequireFromString("33.33")), "got %s", quote.DispatchFee)

	quote, err = svc.ComputeFee(context.Background(), &models.FeeCalculationRequest{
		LoadAmount: decimal.RequireFromString("333.35"),
		LoadType:   models.LoadTypeStandard,
	})
	require.NoError(t, err)
	assert.True(t, quote.DispatchFee.Equal(decimal.RequireFromString("33.34")), "33.335 rounds half up to 33.34, got %s", quote.DispatchFee)
}
