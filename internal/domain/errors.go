package domain

import (
	"errors"
	"fmt"
)

// Sentinel targets for errors.Is checks across packages.
var (
	ErrMissingField     = errors.New("required field missing")
	ErrInvalidValue     = errors.New("invalid field value")
	ErrModelUnavailable = errors.New("risk model unavailable")
	ErrUndefinedRatio   = errors.New("derived ratio undefined")
)

// MissingFieldError reports a required field that is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// InvalidValueError reports a field that is present but unusable: not a
// finite number, negative where non-negative is required, or zero income
// where a ratio needs a positive denominator.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// ModelUnavailableError reports that the classifier could not be queried.
// The assessment is aborted; the failure is never fatal to the host process.
type ModelUnavailableError struct {
	Cause error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause == nil {
		return "risk model unavailable"
	}
	return fmt.Sprintf("risk model unavailable: %v", e.Cause)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

func (e *ModelUnavailableError) Is(target error) bool {
	return target == ErrModelUnavailable
}

// UndefinedRatioError reports a derived ratio with no denominator. It is
// surfaced explicitly rather than coerced to zero.
type UndefinedRatioError struct {
	Ratio string
}

func (e *UndefinedRatioError) Error() string {
	return fmt.Sprintf("ratio %q is undefined: denominator is zero", e.Ratio)
}

func (e *UndefinedRatioError) Is(target error) bool {
	return target == ErrUndefinedRatio
}
