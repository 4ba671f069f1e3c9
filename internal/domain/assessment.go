package domain

import (
	"time"

	"github.com/google/uuid"
)

// RiskCategory represents the discrete risk band assigned to a borrower
type RiskCategory string

const (
	RiskCategoryLow      RiskCategory = "LOW_RISK"
	RiskCategoryMedium   RiskCategory = "MEDIUM_RISK"
	RiskCategoryHigh     RiskCategory = "HIGH_RISK"
	RiskCategoryCritical RiskCategory = "CRITICAL_RISK"
)

// Label returns the human-readable category name shown to recovery teams.
func (c RiskCategory) Label() string {
	switch c {
	case RiskCategoryLow:
		return "Low Risk"
	case RiskCategoryMedium:
		return "Medium Risk"
	case RiskCategoryHigh:
		return "High Risk"
	case RiskCategoryCritical:
		return "Critical Risk"
	default:
		return string(c)
	}
}

// RiskAssessment is the outcome of one model inference plus strategy
// assignment. Produced once per validated request and never mutated.
type RiskAssessment struct {
	ID uuid.UUID `json:"id"`

	// RiskProbability is the positive-class (default) probability in [0,1].
	RiskProbability float64      `json:"risk_probability"`
	RiskCategory    RiskCategory `json:"risk_category"`
	StrategyText    string       `json:"strategy_text"`

	// NearCriticalZone flags a borrower whose risk percentage sits in
	// [80, 85): one more missed payment can tip the category.
	NearCriticalZone bool `json:"near_critical_zone"`

	// Ranked model explanation, present only when the classifier is
	// impact-explainable.
	FeatureImpacts []FeatureImpact `json:"feature_impacts,omitempty"`

	// Plain-language observations for the rendering collaborator.
	Insights []string `json:"insights,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RiskPercent returns the probability as a 0-100 gauge value.
func (a *RiskAssessment) RiskPercent() float64 {
	return a.RiskProbability * 100
}

// FeatureImpact is one entry of the ranked feature-impact explanation.
type FeatureImpact struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description"`
}

// IncreasedRisk reports whether this feature pushed the prediction up.
func (i FeatureImpact) IncreasedRisk() bool {
	return i.Contribution > 0
}

// BorrowerRecord bundles raw inputs, derived features, and the assessment
// into the single immutable object exchanged with rendering, export, and
// persistence collaborators.
type BorrowerRecord struct {
	Profile    BorrowerProfile    `json:"profile"`
	Features   EngineeredFeatures `json:"features"`
	Assessment RiskAssessment     `json:"assessment"`
}

// NewBorrowerRecord assembles a record from the pipeline stages. It refuses
// to assemble when any upstream stage is missing or carries an undefined
// ratio sentinel: a partial record must not be exposed to collaborators.
func NewBorrowerRecord(profile *BorrowerProfile, features *EngineeredFeatures, assessment *RiskAssessment) (*BorrowerRecord, error) {
	if profile == nil {
		return nil, &MissingFieldError{Field: "profile"}
	}
	if features == nil {
		return nil, &MissingFieldError{Field: "features"}
	}
	if assessment == nil {
		return nil, &MissingFieldError{Field: "assessment"}
	}
	if !features.EMIToIncome.Valid {
		return nil, &UndefinedRatioError{Ratio: "emi_to_income"}
	}
	if !features.CollateralCoverage.Valid {
		return nil, &UndefinedRatioError{Ratio: "collateral_coverage"}
	}
	if assessment.RiskCategory == "" {
		return nil, &MissingFieldError{Field: "risk_category"}
	}
	if assessment.RiskProbability < 0 || assessment.RiskProbability > 1 {
		return nil, &InvalidValueError{Field: "risk_probability", Reason: "must be within [0,1]"}
	}

	return &BorrowerRecord{
		Profile:    *profile,
		Features:   *features,
		Assessment: *assessment,
	}, nil
}

// PaidPayments returns the number of EMIs paid on time, for the
// paid-vs-missed payment history chart. Never negative.
func (r *BorrowerRecord) PaidPayments() int {
	paid := r.Profile.LoanTenureMonths - r.Profile.MissedPayments
	if paid < 0 {
		return 0
	}
	return paid
}

// ExposureSplit returns the loan and collateral shares of total exposure as
// percentages. Both are zero when neither amount is set.
func (r *BorrowerRecord) ExposureSplit() (loanPct, collateralPct float64) {
	total := r.Profile.LoanAmount + r.Profile.CollateralValue
	if total <= 0 {
		return 0, 0
	}
	return r.Profile.LoanAmount / total * 100, r.Profile.CollateralValue / total * 100
}
