package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lending/recovery-service/internal/domain"
)

func num(v float64) *float64 { return &v }

func validRaw() *domain.RawBorrowerInput {
	return &domain.RawBorrowerInput{
		FirstName:        "Anita",
		LastName:         "Desai",
		LoanType:         "personal",
		Age:              num(41),
		MonthlyIncome:    num(65000),
		NumDependents:    num(1),
		LoanAmount:       num(400000),
		LoanTenureMonths: num(48),
		InterestRatePct:  num(13.5),
		OutstandingLoan:  num(320000),
		CollateralValue:  num(150000),
		MissedPayments:   num(1),
		DaysPastDue:      num(20),
	}
}

func TestValidateInput_AcceptsCompleteSubmission(t *testing.T) {
	profile, err := ValidateInput(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "Anita", profile.FirstName)
	assert.Equal(t, 41, profile.Age)
	assert.Equal(t, 65000.0, profile.MonthlyIncome)
	assert.Equal(t, 48, profile.LoanTenureMonths)
	assert.Equal(t, 1, profile.MissedPayments)
}

func TestValidateInput_MissingFields(t *testing.T) {
	t.Run("nil submission", func(t *testing.T) {
		_, err := ValidateInput(nil)
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("blank first name", func(t *testing.T) {
		raw := validRaw()
		raw.FirstName = "   "
		_, err := ValidateInput(raw)
		require.ErrorIs(t, err, domain.ErrMissingField)

		var missing *domain.MissingFieldError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "first_name", missing.Field)
	})

	t.Run("absent numeric", func(t *testing.T) {
		raw := validRaw()
		raw.OutstandingLoan = nil
		_, err := ValidateInput(raw)
		require.ErrorIs(t, err, domain.ErrMissingField)

		var missing *domain.MissingFieldError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "outstanding_loan", missing.Field)
	})
}

func TestValidateInput_RejectsNonFiniteAndNegative(t *testing.T) {
	t.Run("NaN age", func(t *testing.T) {
		raw := validRaw()
		raw.Age = num(math.NaN())
		_, err := ValidateInput(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("infinite income", func(t *testing.T) {
		raw := validRaw()
		raw.MonthlyIncome = num(math.Inf(1))
		_, err := ValidateInput(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("negative collateral", func(t *testing.T) {
		raw := validRaw()
		raw.CollateralValue = num(-1)
		_, err := ValidateInput(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})
}

func TestValidateInput_ZeroIncomeIsItsOwnFailure(t *testing.T) {
	raw := validRaw()
	raw.MonthlyIncome = num(0)

	_, err := ValidateInput(raw)
	require.ErrorIs(t, err, domain.ErrInvalidValue)

	var invalid *domain.InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "monthly_income", invalid.Field)
	assert.Contains(t, invalid.Reason, "EMI-to-income")
}

func TestValidateInput_ZeroCollateralIsAllowed(t *testing.T) {
	raw := validRaw()
	raw.CollateralValue = num(0)

	profile, err := ValidateInput(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.0, profile.CollateralValue)
}

func TestValidateInput_LoanTypeDefaults(t *testing.T) {
	t.Run("fills absent rate and tenure", func(t *testing.T) {
		raw := validRaw()
		raw.LoanType = "auto"
		raw.InterestRatePct = nil
		raw.LoanTenureMonths = nil

		profile, err := ValidateInput(raw)
		require.NoError(t, err)
		assert.Equal(t, 10.5, profile.InterestRatePct)
		assert.Equal(t, 60, profile.LoanTenureMonths)
	})

	t.Run("explicit figures win over defaults", func(t *testing.T) {
		raw := validRaw()
		raw.LoanType = "auto"

		profile, err := ValidateInput(raw)
		require.NoError(t, err)
		assert.Equal(t, 13.5, profile.InterestRatePct)
		assert.Equal(t, 48, profile.LoanTenureMonths)
	})

	t.Run("unknown type uses generic terms", func(t *testing.T) {
		raw := validRaw()
		raw.LoanType = "yacht"
		raw.InterestRatePct = nil
		raw.LoanTenureMonths = nil

		profile, err := ValidateInput(raw)
		require.NoError(t, err)
		assert.Equal(t, 15.0, profile.InterestRatePct)
		assert.Equal(t, 36, profile.LoanTenureMonths)
	})

	t.Run("no loan type leaves absent fields missing", func(t *testing.T) {
		raw := validRaw()
		raw.LoanType = ""
		raw.InterestRatePct = nil

		_, err := ValidateInput(raw)
		assert.ErrorIs(t, err, domain.ErrMissingField)
	})
}

func TestValidateInput_RejectsDegenerateLoanFigures(t *testing.T) {
	for _, field := range []string{"loan_amount", "loan_tenure_months", "interest_rate_pct"} {
		t.Run("zero "+field, func(t *testing.T) {
			raw := validRaw()
			switch field {
			case "loan_amount":
				raw.LoanAmount = num(0)
			case "loan_tenure_months":
				raw.LoanTenureMonths = num(0)
			case "interest_rate_pct":
				raw.InterestRatePct = num(0)
			}

			_, err := ValidateInput(raw)
			require.ErrorIs(t, err, domain.ErrInvalidValue)

			var invalid *domain.InvalidValueError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, field, invalid.Field)
		})
	}
}
