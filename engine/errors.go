/*
errors.go - Centralized error types for the projection engine

PURPOSE:
  All engine error kinds in one place. The engine never downgrades a failure
  to a default value: a bad region or an impossible calendar month aborts the
  whole projection, and the caller decides what to tell the user.

ERROR CATEGORIES:
  1. Region errors - the holiday source does not know the configured region
  2. Calendar errors - a month classified to zero workdays
  3. Input errors - malformed installments or configuration, caught before
     any month is computed

USAGE:
  Callers distinguish kinds with errors.Is():

    if errors.Is(err, engine.ErrInvalidRegion) {
        // user must fix estado_feriados
    }

SEE ALSO:
  - projection.go: where input validation runs
  - calendar.go: where region errors originate
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRegion is returned when the holiday source does not recognize
	// the configured region code. Fatal to the whole projection; never retried.
	ErrInvalidRegion = errors.New("invalid holiday region")

	// ErrNoWorkdays is returned when a month classifies to zero workdays.
	// That only happens on inconsistent holiday data and must surface, not be
	// papered over with a zero DSR.
	ErrNoWorkdays = errors.New("month has no workdays")

	// ErrMalformedInstallment is returned when an installment window is
	// invalid (start after end, unparseable months, negative amount).
	ErrMalformedInstallment = errors.New("malformed installment")

	// ErrInvalidConfig is returned when the configuration violates its
	// invariants (non-positive base salary, fraction out of range, ...).
	ErrInvalidConfig = errors.New("invalid configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidRegionError reports the region the holiday source rejected.
type InvalidRegionError struct {
	Region string
	Cause  error
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid holiday region %q: %v", e.Region, e.Cause)
}

func (e *InvalidRegionError) Unwrap() error { return ErrInvalidRegion }

// NoWorkdaysError reports which projected month had zero workdays.
type NoWorkdaysError struct {
	Month Month
}

func (e *NoWorkdaysError) Error() string {
	return fmt.Sprintf("month %s has no workdays", e.Month)
}

func (e *NoWorkdaysError) Unwrap() error { return ErrNoWorkdays }

// MalformedInstallmentError reports which installment failed validation and why.
type MalformedInstallmentError struct {
	Name   string
	Reason string
}

func (e *MalformedInstallmentError) Error() string {
	return fmt.Sprintf("malformed installment %q: %s", e.Name, e.Reason)
}

func (e *MalformedInstallmentError) Unwrap() error { return ErrMalformedInstallment }

// InvalidConfigError reports which configuration field is invalid.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to user-supplied input and
// can be fixed by correcting the configuration.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRegion) ||
		errors.Is(err, ErrMalformedInstallment) ||
		errors.Is(err, ErrInvalidConfig)
}
