package scoring

import "github.com/shopspring/decimal"

var monthsPerYearPct = decimal.NewFromInt(1200)

// CalculateEMI computes the fixed monthly installment for an amortized loan:
//
//	emi = P * r * (1+r)^n / ((1+r)^n - 1), r = annualRatePct / 1200
//
// The result is rounded half away from zero to 2 decimal places. Degenerate
// loans (principal, rate, or term not strictly positive) have no EMI; the
// second return value is false and the amount is zero. Pure function, no
// side effects.
func CalculateEMI(principal, annualRatePct decimal.Decimal, termMonths int) (decimal.Decimal, bool) {
	if principal.Sign() <= 0 || annualRatePct.Sign() <= 0 || termMonths <= 0 {
		return decimal.Zero, false
	}

	monthlyRate := annualRatePct.Div(monthsPerYearPct)
	compound := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))

	emi := principal.Mul(monthlyRate).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1)))
	return emi.Round(2), true
}
