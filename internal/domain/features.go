package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Ratio is a derived ratio that may be undefined when its denominator is
// zero. An invalid Ratio is a distinct state, not a zero value: collapsing
// "no income" to an EMI-to-income ratio of 0 would silently mark the
// borrower as risk-free.
type Ratio struct {
	Value float64
	Valid bool
}

// NewRatio returns a defined ratio.
func NewRatio(v float64) Ratio {
	return Ratio{Value: v, Valid: true}
}

// UndefinedRatio returns the "not applicable" sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// Percent returns the ratio as a percentage. Only meaningful when Valid.
func (r Ratio) Percent() float64 {
	return r.Value * 100
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes null as the undefined sentinel.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Valid: true}
	return nil
}

// EngineeredFeatures holds the derived fields computed from a validated
// BorrowerProfile. They are recomputed on every request and never cached
// across requests.
type EngineeredFeatures struct {
	MonthlyEMI         decimal.Decimal `json:"monthly_emi"`
	EMIToIncome        Ratio           `json:"emi_to_income"`
	CollateralCoverage Ratio           `json:"collateral_coverage"`
	DefaultSeverity    int             `json:"default_severity"`
	CollectionAttempts int             `json:"collection_attempts"`
}

// Complete reports whether every derived field is defined. An incomplete
// feature set must never reach the model adapter or a BorrowerRecord.
func (f *EngineeredFeatures) Complete() bool {
	return f.EMIToIncome.Valid && f.CollateralCoverage.Valid
}
