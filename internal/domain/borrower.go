package domain

import "strings"

// RawBorrowerInput is the loosely-typed attribute set as submitted by a
// form-driven or programmatic caller. Numeric fields are pointers so that an
// absent value is distinguishable from an explicit zero; nothing here is
// trusted until the validator has converted it into a BorrowerProfile.
type RawBorrowerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender,omitempty"`
	LoanType  string `json:"loan_type,omitempty"`

	Age              *float64 `json:"age"`
	MonthlyIncome    *float64 `json:"monthly_income"`
	NumDependents    *float64 `json:"num_dependents"`
	LoanAmount       *float64 `json:"loan_amount"`
	LoanTenureMonths *float64 `json:"loan_tenure_months"`
	InterestRatePct  *float64 `json:"interest_rate_pct"`
	OutstandingLoan  *float64 `json:"outstanding_loan"`
	CollateralValue  *float64 `json:"collateral_value"`
	MissedPayments   *float64 `json:"missed_payments"`
	DaysPastDue      *float64 `json:"days_past_due"`
}

// BorrowerProfile is the validated, strictly-typed input to the assessment
// pipeline. It is created once per request and never mutated afterwards.
type BorrowerProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender,omitempty"`
	LoanType  string `json:"loan_type,omitempty"`

	Age              int     `json:"age"`
	MonthlyIncome    float64 `json:"monthly_income"`
	NumDependents    int     `json:"num_dependents"`
	LoanAmount       float64 `json:"loan_amount"`
	LoanTenureMonths int     `json:"loan_tenure_months"`
	InterestRatePct  float64 `json:"interest_rate_pct"`
	OutstandingLoan  float64 `json:"outstanding_loan"`
	CollateralValue  float64 `json:"collateral_value"`
	MissedPayments   int     `json:"missed_payments"`
	DaysPastDue      int     `json:"days_past_due"`
}

// FullName returns the borrower's display name.
func (p *BorrowerProfile) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// LoanTerms holds the typical interest rate and tenure for a loan type.
type LoanTerms struct {
	InterestRatePct float64 `json:"interest_rate_pct"`
	TenureMonths    int     `json:"tenure_months"`
}

// Reference terms per loan type, used to pre-fill rate and tenure when the
// caller names a loan type but omits the figures.
var loanTermsByType = map[string]LoanTerms{
	"personal": {InterestRatePct: 14.0, TenureMonths: 48},
	"auto":     {InterestRatePct: 10.5, TenureMonths: 60},
	"business": {InterestRatePct: 16.0, TenureMonths: 36},
	"home":     {InterestRatePct: 9.0, TenureMonths: 180},
}

// Terms returned when the loan type is unknown or blank.
var fallbackLoanTerms = LoanTerms{InterestRatePct: 15.0, TenureMonths: 36}

// DefaultLoanTerms returns the typical terms for the given loan type,
// falling back to generic terms for unknown types.
func DefaultLoanTerms(loanType string) LoanTerms {
	if terms, ok := loanTermsByType[strings.ToLower(strings.TrimSpace(loanType))]; ok {
		return terms
	}
	return fallbackLoanTerms
}
