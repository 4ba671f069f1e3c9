package scoring

import (
	"math"
	"strings"

	"github.com/lending/recovery-service/internal/domain"
)

// ValidateInput checks a raw borrower submission and converts it into a
// strict BorrowerProfile. Validation runs to completion before any derived
// feature is computed: downstream stages assume present, finite, in-range
// numerics.
//
// When the caller names a loan type but omits the interest rate or tenure,
// the reference terms for that loan type are filled in before the numeric
// checks run.
func ValidateInput(raw *domain.RawBorrowerInput) (*domain.BorrowerProfile, error) {
	if raw == nil {
		return nil, &domain.MissingFieldError{Field: "borrower"}
	}
	if strings.TrimSpace(raw.FirstName) == "" {
		return nil, &domain.MissingFieldError{Field: "first_name"}
	}
	if strings.TrimSpace(raw.LastName) == "" {
		return nil, &domain.MissingFieldError{Field: "last_name"}
	}

	applyLoanTypeDefaults(raw)

	age, err := requireNumeric("age", raw.Age)
	if err != nil {
		return nil, err
	}
	monthlyIncome, err := requireNumeric("monthly_income", raw.MonthlyIncome)
	if err != nil {
		return nil, err
	}
	numDependents, err := requireNumeric("num_dependents", raw.NumDependents)
	if err != nil {
		return nil, err
	}
	loanAmount, err := requireNumeric("loan_amount", raw.LoanAmount)
	if err != nil {
		return nil, err
	}
	loanTenure, err := requireNumeric("loan_tenure_months", raw.LoanTenureMonths)
	if err != nil {
		return nil, err
	}
	interestRate, err := requireNumeric("interest_rate_pct", raw.InterestRatePct)
	if err != nil {
		return nil, err
	}
	outstandingLoan, err := requireNumeric("outstanding_loan", raw.OutstandingLoan)
	if err != nil {
		return nil, err
	}
	collateralValue, err := requireNumeric("collateral_value", raw.CollateralValue)
	if err != nil {
		return nil, err
	}
	missedPayments, err := requireNumeric("missed_payments", raw.MissedPayments)
	if err != nil {
		return nil, err
	}
	daysPastDue, err := requireNumeric("days_past_due", raw.DaysPastDue)
	if err != nil {
		return nil, err
	}

	// Zero income gets its own report: the EMI-to-income ratio is
	// mathematically undefined, which is a different failure than a field
	// being absent.
	if monthlyIncome == 0 {
		return nil, &domain.InvalidValueError{
			Field:  "monthly_income",
			Reason: "must be greater than zero to compute the EMI-to-income ratio",
		}
	}
	if loanAmount <= 0 {
		return nil, &domain.InvalidValueError{Field: "loan_amount", Reason: "must be greater than zero"}
	}
	if loanTenure <= 0 {
		return nil, &domain.InvalidValueError{Field: "loan_tenure_months", Reason: "must be greater than zero"}
	}
	if interestRate <= 0 {
		return nil, &domain.InvalidValueError{Field: "interest_rate_pct", Reason: "must be greater than zero"}
	}

	return &domain.BorrowerProfile{
		FirstName:        strings.TrimSpace(raw.FirstName),
		LastName:         strings.TrimSpace(raw.LastName),
		Gender:           strings.TrimSpace(raw.Gender),
		LoanType:         strings.TrimSpace(raw.LoanType),
		Age:              int(age),
		MonthlyIncome:    monthlyIncome,
		NumDependents:    int(numDependents),
		LoanAmount:       loanAmount,
		LoanTenureMonths: int(loanTenure),
		InterestRatePct:  interestRate,
		OutstandingLoan:  outstandingLoan,
		CollateralValue:  collateralValue,
		MissedPayments:   int(missedPayments),
		DaysPastDue:      int(daysPastDue),
	}, nil
}

// requireNumeric rejects absent, NaN-like, and negative values.
func requireNumeric(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, &domain.MissingFieldError{Field: field}
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, &domain.InvalidValueError{Field: field, Reason: "not a finite number"}
	}
	if *v < 0 {
		return 0, &domain.InvalidValueError{Field: field, Reason: "must not be negative"}
	}
	return *v, nil
}

// applyLoanTypeDefaults fills absent rate and tenure from the reference
// terms of the named loan type.
func applyLoanTypeDefaults(raw *domain.RawBorrowerInput) {
	if strings.TrimSpace(raw.LoanType) == "" {
		return
	}
	terms := domain.DefaultLoanTerms(raw.LoanType)
	if raw.InterestRatePct == nil {
		rate := terms.InterestRatePct
		raw.InterestRatePct = &rate
	}
	if raw.LoanTenureMonths == nil {
		tenure := float64(terms.TenureMonths)
		raw.LoanTenureMonths = &tenure
	}
}
