package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lending/recovery-service/internal/domain"
)

func testProfile() *domain.BorrowerProfile {
	return &domain.BorrowerProfile{
		FirstName:        "Rohit",
		LastName:         "Sharma",
		LoanType:         "home",
		Age:              35,
		MonthlyIncome:    50000,
		NumDependents:    2,
		LoanAmount:       300000,
		LoanTenureMonths: 180,
		InterestRatePct:  9.0,
		OutstandingLoan:  250000,
		CollateralValue:  200000,
		MissedPayments:   2,
		DaysPastDue:      45,
	}
}

func TestEngineerFeatures_DerivedValues(t *testing.T) {
	profile := testProfile()
	emi := decimal.NewFromFloat(3042.80)

	features := EngineerFeatures(profile, emi)

	require.True(t, features.EMIToIncome.Valid)
	assert.InDelta(t, 0.061, features.EMIToIncome.Value, 1e-9)

	require.True(t, features.CollateralCoverage.Valid)
	assert.InDelta(t, 0.667, features.CollateralCoverage.Value, 1e-9)

	assert.Equal(t, 90, features.DefaultSeverity)
	assert.Equal(t, 2, features.CollectionAttempts)
	assert.True(t, features.MonthlyEMI.Equal(emi))
	assert.True(t, features.Complete())
}

func TestEngineerFeatures_UndefinedRatios(t *testing.T) {
	t.Run("zero income", func(t *testing.T) {
		profile := testProfile()
		profile.MonthlyIncome = 0

		features := EngineerFeatures(profile, decimal.NewFromFloat(3042.80))

		assert.False(t, features.EMIToIncome.Valid)
		assert.True(t, features.CollateralCoverage.Valid)
		assert.False(t, features.Complete())
	})

	t.Run("zero loan amount", func(t *testing.T) {
		profile := testProfile()
		profile.LoanAmount = 0

		features := EngineerFeatures(profile, decimal.NewFromFloat(3042.80))

		assert.True(t, features.EMIToIncome.Valid)
		assert.False(t, features.CollateralCoverage.Valid)
		assert.False(t, features.Complete())
	})
}

func TestEngineerFeatures_SeverityIsMissedTimesDaysPastDue(t *testing.T) {
	profile := testProfile()
	profile.MissedPayments = 0
	profile.DaysPastDue = 500

	features := EngineerFeatures(profile, decimal.NewFromFloat(100))
	assert.Equal(t, 0, features.DefaultSeverity)
}

func TestEstimateCollectionAttempts(t *testing.T) {
	tests := []struct {
		missed int
		dpd    int
		want   int
	}{
		{0, 0, 0},
		{0, 500, 0}, // no missed payments means no escalation
		{1, 0, 1},
		{1, 30, 1},
		{1, 31, 2},
		{1, 45, 2},
		{2, 60, 2},
		{2, 61, 3},
		{3, 90, 3},
		{3, 91, 4},
		{3, 95, 4},
		{10, 365, 4},
	}

	for _, tt := range tests {
		got := EstimateCollectionAttempts(tt.missed, tt.dpd)
		assert.Equal(t, tt.want, got, "missed=%d dpd=%d", tt.missed, tt.dpd)
	}
}
