package scoring

import (
	"fmt"
	"sort"

	"github.com/lending/recovery-service/internal/domain"
)

// EMI burden bands as a share of monthly income.
const (
	emiBurdenHigh     = 0.50
	emiBurdenModerate = 0.35
)

// Missed payments at or above this count read as payment fatigue.
const paymentFatigueThreshold = 4

// maxInsights caps the bullet list handed to the renderer.
const maxInsights = 3

// BuildInsights derives plain-language observations about the borrower's
// position for the rendering collaborator. At most maxInsights bullets,
// most significant first.
func BuildInsights(profile *domain.BorrowerProfile, features *domain.EngineeredFeatures) []string {
	insights := make([]string, 0, maxInsights)

	if features.EMIToIncome.Valid {
		switch ratio := features.EMIToIncome.Value; {
		case ratio > emiBurdenHigh:
			insights = append(insights, "EMI burden exceeds 50% of income")
		case ratio > emiBurdenModerate:
			insights = append(insights, "EMI burden is moderate (35-50% of income)")
		default:
			insights = append(insights, "EMI burden is low relative to income")
		}
	}

	switch missed := profile.MissedPayments; {
	case missed >= paymentFatigueThreshold:
		insights = append(insights, fmt.Sprintf("Missed %d EMIs, indicating growing payment fatigue", missed))
	case missed == 1:
		insights = append(insights, "Missed 1 EMI recently")
	case missed > 1:
		insights = append(insights, fmt.Sprintf("Missed %d EMIs recently", missed))
	default:
		insights = append(insights, "No missed EMIs, good repayment track record")
	}

	switch {
	case profile.CollateralValue == 0:
		insights = append(insights, "No collateral, unsecured risk exposure")
	case features.CollateralCoverage.Valid && features.CollateralCoverage.Value < 1:
		insights = append(insights, "Collateral value is less than the loan amount, higher risk in default")
	case features.CollateralCoverage.Valid && features.CollateralCoverage.Value == 1:
		insights = append(insights, "Collateral matches the loan amount, basic security")
	case features.CollateralCoverage.Valid:
		insights = append(insights, "Collateral exceeds the loan amount, strong security")
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

// topImpacts is how many ranked features the explanation keeps.
const topImpacts = 3

// Plain-language interpretation per feature, keyed by FeatureNames entries.
var featureImpactDescriptions = map[string]string{
	"age":                 "Borrower's age can affect risk, with very young or old ages sometimes increasing risk.",
	"monthly_income":      "Higher monthly income generally reduces risk, while lower income increases it.",
	"num_dependents":      "More dependents may mean higher financial obligations, increasing risk.",
	"loan_tenure":         "Longer loan tenure can increase risk due to longer exposure.",
	"interest_rate":       "Higher interest rates can increase repayment burden and risk.",
	"outstanding_loan":    "A higher outstanding loan amount increases the lender's exposure.",
	"collection_attempts": "More collection attempts indicate repayment issues, raising risk.",
	"emi_to_income":       "A high EMI to income ratio means a large part of income goes to loan payments, increasing risk.",
	"collateral_coverage": "Lower collateral coverage means less security for the lender, raising risk.",
	"default_severity":    "More missed payments or higher default severity increases the risk of default.",
}

// RankFeatureImpacts turns positional model contributions into the ranked
// top-N explanation, largest absolute contribution first.
func RankFeatureImpacts(features FeatureVector, contributions [FeatureVectorSize]float64) []domain.FeatureImpact {
	impacts := make([]domain.FeatureImpact, 0, FeatureVectorSize)
	for i, name := range FeatureNames {
		impacts = append(impacts, domain.FeatureImpact{
			Feature:      name,
			Value:        features[i],
			Contribution: contributions[i],
			Description:  featureImpactDescriptions[name],
		})
	}

	sort.SliceStable(impacts, func(a, b int) bool {
		return abs(impacts[a].Contribution) > abs(impacts[b].Contribution)
	})

	if len(impacts) > topImpacts {
		impacts = impacts[:topImpacts]
	}
	return impacts
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
