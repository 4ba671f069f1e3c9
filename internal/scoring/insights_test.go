package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lending/recovery-service/internal/domain"
)

func featuresFor(profile *domain.BorrowerProfile, emiToIncome float64) *domain.EngineeredFeatures {
	f := EngineerFeatures(profile, decimal.NewFromFloat(emiToIncome*profile.MonthlyIncome))
	return &f
}

func TestBuildInsights_EMIBurdenBands(t *testing.T) {
	profile := testProfile()

	tests := []struct {
		ratio float64
		want  string
	}{
		{0.60, "EMI burden exceeds 50% of income"},
		{0.40, "EMI burden is moderate (35-50% of income)"},
		{0.10, "EMI burden is low relative to income"},
	}

	for _, tt := range tests {
		insights := BuildInsights(profile, featuresFor(profile, tt.ratio))
		require.NotEmpty(t, insights)
		assert.Equal(t, tt.want, insights[0])
	}
}

func TestBuildInsights_MissedPayments(t *testing.T) {
	profile := testProfile()

	t.Run("clean record", func(t *testing.T) {
		profile.MissedPayments = 0
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "No missed EMIs, good repayment track record")
	})

	t.Run("single miss", func(t *testing.T) {
		profile.MissedPayments = 1
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "Missed 1 EMI recently")
	})

	t.Run("payment fatigue", func(t *testing.T) {
		profile.MissedPayments = 5
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "Missed 5 EMIs, indicating growing payment fatigue")
	})
}

func TestBuildInsights_CollateralPosition(t *testing.T) {
	profile := testProfile()

	t.Run("unsecured", func(t *testing.T) {
		profile.CollateralValue = 0
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "No collateral, unsecured risk exposure")
	})

	t.Run("under-collateralized", func(t *testing.T) {
		profile.CollateralValue = profile.LoanAmount / 2
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "Collateral value is less than the loan amount, higher risk in default")
	})

	t.Run("fully covered", func(t *testing.T) {
		profile.CollateralValue = profile.LoanAmount
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "Collateral matches the loan amount, basic security")
	})

	t.Run("over-collateralized", func(t *testing.T) {
		profile.CollateralValue = profile.LoanAmount * 2
		insights := BuildInsights(profile, featuresFor(profile, 0.1))
		assert.Contains(t, insights, "Collateral exceeds the loan amount, strong security")
	})
}

func TestBuildInsights_CapsAtThree(t *testing.T) {
	profile := testProfile()
	insights := BuildInsights(profile, featuresFor(profile, 0.6))
	assert.LessOrEqual(t, len(insights), 3)
}

func TestRankFeatureImpacts(t *testing.T) {
	vector := FeatureVector{35, 50000, 2, 180, 9, 250000, 2, 0.061, 0.667, 90}
	contributions := [FeatureVectorSize]float64{0.05, -0.40, 0.01, 0.02, 0.03, 0.10, 0.20, 0.35, -0.02, 0.08}

	impacts := RankFeatureImpacts(vector, contributions)
	require.Len(t, impacts, 3)

	assert.Equal(t, "monthly_income", impacts[0].Feature)
	assert.Equal(t, -0.40, impacts[0].Contribution)
	assert.Equal(t, 50000.0, impacts[0].Value)
	assert.NotEmpty(t, impacts[0].Description)

	assert.Equal(t, "emi_to_income", impacts[1].Feature)
	assert.Equal(t, "collection_attempts", impacts[2].Feature)
}

func TestRankFeatureImpacts_TiesKeepContractOrder(t *testing.T) {
	vector := FeatureVector{}
	contributions := [FeatureVectorSize]float64{0.1, 0.1, 0.1}

	impacts := RankFeatureImpacts(vector, contributions)
	require.Len(t, impacts, 3)
	assert.Equal(t, "age", impacts[0].Feature)
	assert.Equal(t, "monthly_income", impacts[1].Feature)
	assert.Equal(t, "num_dependents", impacts[2].Feature)
}
