package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMI_KnownLoans(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termMonths int
		want       string
	}{
		{"home loan 15y", 300000, 9.0, 180, "3042.8"},
		{"auto loan 5y", 500000, 10.5, 60, "10746.95"},
		{"short personal loan", 100000, 12.0, 24, "4707.35"},
		{"personal loan 4y", 300000, 14.0, 48, "8197.94"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emi, ok := CalculateEMI(
				decimal.NewFromFloat(tt.principal),
				decimal.NewFromFloat(tt.annualRate),
				tt.termMonths,
			)
			require.True(t, ok)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, emi.Equal(want), "got %s, want %s", emi, want)
		})
	}
}

func TestCalculateEMI_DegenerateLoans(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termMonths int
	}{
		{"zero principal", 0, 10, 12},
		{"negative principal", -1000, 10, 12},
		{"zero rate", 100000, 0, 12},
		{"negative rate", 100000, -5, 12},
		{"zero term", 100000, 10, 0},
		{"negative term", 100000, 10, -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emi, ok := CalculateEMI(
				decimal.NewFromFloat(tt.principal),
				decimal.NewFromFloat(tt.annualRate),
				tt.termMonths,
			)
			assert.False(t, ok)
			assert.True(t, emi.IsZero())
		})
	}
}

func TestCalculateEMI_SingleMonthRepaysWithInterest(t *testing.T) {
	// One month at 12% annual is 1% monthly: 100000 * 1.01.
	emi, ok := CalculateEMI(decimal.NewFromInt(100000), decimal.NewFromInt(12), 1)
	require.True(t, ok)
	assert.True(t, emi.Equal(decimal.NewFromInt(101000)), "got %s", emi)
}

func TestCalculateEMI_RoundsToTwoPlaces(t *testing.T) {
	emi, ok := CalculateEMI(decimal.NewFromFloat(300000), decimal.NewFromFloat(9), 180)
	require.True(t, ok)
	assert.LessOrEqual(t, -emi.Exponent(), int32(2))
}
