package scoring

import "github.com/lending/recovery-service/internal/domain"

// Recovery strategy recommendations per risk band.
const (
	strategyCritical = "Initiate legal proceedings, send final demand notices with collateral seizure intent, " +
		"escalate the case to external recovery agencies, and flag the borrower as a chronic defaulter."

	strategyHighImminent = "Send a pre-litigation warning, offer limited-time restructuring, " +
		"and escalate to the senior recovery team."

	strategyHigh = "Offer one-time settlement options or revised repayment terms, " +
		"escalate to the senior collections team, and issue a pre-litigation warning."

	strategyMedium = "Trigger multiple soft recovery attempts including calls, emails, and chat nudges. " +
		"Offer flexible EMI restructuring plans and conduct borrower behavior analysis."

	strategyLow = "Send timely automated reminders via SMS and email, monitor payment behavior closely, " +
		"and provide financial advisory nudges to maintain repayment consistency."
)

// Strategy thresholds. The bands are evaluated top-down; the first match
// wins, which makes them mutually exclusive by ordering.
const (
	criticalProbability = 0.90 // strictly above
	highProbability     = 0.75 // strictly above
	mediumProbability   = 0.25 // strictly above
	criticalDaysPastDue = 90   // inclusive
)

// AssignStrategy maps a default probability and delinquency depth to a risk
// category and a recovery-action recommendation. Pure and stateless: every
// request is independent, there is no borrower history or memory of prior
// assessments.
func AssignStrategy(riskProbability float64, daysPastDue int) (domain.RiskCategory, string) {
	switch {
	case riskProbability > criticalProbability && daysPastDue >= criticalDaysPastDue:
		return domain.RiskCategoryCritical, strategyCritical
	case riskProbability > criticalProbability:
		return domain.RiskCategoryHigh, strategyHighImminent
	case riskProbability > highProbability:
		return domain.RiskCategoryHigh, strategyHigh
	case riskProbability > mediumProbability:
		return domain.RiskCategoryMedium, strategyMedium
	default:
		return domain.RiskCategoryLow, strategyLow
	}
}

// Near-critical advisory band, as risk percentage.
const (
	nearCriticalLowPct  = 80.0
	nearCriticalHighPct = 85.0
)

// NearCriticalZone reports whether the borrower sits just under the
// critical band, where one more missed payment warrants immediate
// attention.
func NearCriticalZone(riskProbability float64) bool {
	pct := riskProbability * 100
	return pct >= nearCriticalLowPct && pct < nearCriticalHighPct
}
