package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fleetflow/internal/utils"
)

func TestRoundToCents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"275", "275"},
		{"33.335", "33.34"},
		{"33.334", "33.33"},
		{"-12.005", "-12.01"},
		{"0.004999", "0"},
	}
	for _, tc := range cases {
		got := utils.RoundToCents(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "RoundToCents(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestPercentOf(t *testing.T) {
	got := utils.PercentOf(decimal.NewFromInt(2750), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(275)), "got %s", got)

	got = utils.PercentOf(decimal.RequireFromString("333.35"), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.RequireFromString("33.34")), "got %s", got)
}

func TestClampPercentage(t *testing.T) {
	min := decimal.NewFromInt(5)
	max := decimal.NewFromInt(15)

	assert.True(t, utils.ClampPercentage(decimal.NewFromInt(20), min, max).Equal(max))
	assert.True(t, utils.ClampPercentage(decimal.NewFromInt(3), min, max).Equal(min))
	assert.True(t, utils.ClampPercentage(decimal.NewFromInt(12), min, max).Equal(decimal.NewFromInt(12)))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$2750.00", utils.FormatUSD(decimal.NewFromInt(2750)))
	assert.Equal(t, "$33.34", utils.FormatUSD(decimal.RequireFromString("33.34")))
}
