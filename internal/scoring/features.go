package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/lending/recovery-service/internal/domain"
)

// ratioPlaces is the precision of the derived ratios fed to the model.
const ratioPlaces = 3

// EngineerFeatures derives the engineered feature set from a validated
// profile and its computed EMI. Ratios with a zero denominator come back as
// the undefined sentinel, never as zero. Side-effect free; depends only on
// its inputs.
func EngineerFeatures(profile *domain.BorrowerProfile, monthlyEMI decimal.Decimal) domain.EngineeredFeatures {
	return domain.EngineeredFeatures{
		MonthlyEMI:         monthlyEMI,
		EMIToIncome:        emiToIncome(monthlyEMI, profile.MonthlyIncome),
		CollateralCoverage: collateralCoverage(profile.CollateralValue, profile.LoanAmount),
		DefaultSeverity:    profile.MissedPayments * profile.DaysPastDue,
		CollectionAttempts: EstimateCollectionAttempts(profile.MissedPayments, profile.DaysPastDue),
	}
}

// emiToIncome is round(emi / income, 3) when income is positive.
func emiToIncome(monthlyEMI decimal.Decimal, monthlyIncome float64) domain.Ratio {
	if monthlyIncome <= 0 {
		return domain.UndefinedRatio()
	}
	ratio := monthlyEMI.Div(decimal.NewFromFloat(monthlyIncome)).Round(ratioPlaces)
	return domain.NewRatio(ratio.InexactFloat64())
}

// collateralCoverage is round(collateral / loanAmount, 3) when the loan
// amount is positive.
func collateralCoverage(collateralValue, loanAmount float64) domain.Ratio {
	if loanAmount <= 0 {
		return domain.UndefinedRatio()
	}
	ratio := decimal.NewFromFloat(collateralValue).
		Div(decimal.NewFromFloat(loanAmount)).
		Round(ratioPlaces)
	return domain.NewRatio(ratio.InexactFloat64())
}

// EstimateCollectionAttempts derives the escalation tier from delinquency
// depth. Zero missed payments means no escalation regardless of days past
// due; otherwise the tier is banded by days past due. Deterministic and
// total over non-negative inputs.
func EstimateCollectionAttempts(missedPayments, daysPastDue int) int {
	switch {
	case missedPayments == 0:
		return 0
	case daysPastDue <= 30:
		return 1
	case daysPastDue <= 60:
		return 2
	case daysPastDue <= 90:
		return 3
	default:
		return 4
	}
}
