package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidApplication marks application-shape validation failures so the
// transport layers can map them to a client error.
var ErrInvalidApplication = errors.New("invalid credit application")

// CreditApplication is the raw applicant record a single analysis operates
// on. It is a plain value: immutable for the duration of the analysis and
// carrying no identity of its own.
type CreditApplication struct {
	// AnnualIncome is the net annual income in euros.
	AnnualIncome float64
	// Principal is the requested credit amount in euros.
	Principal float64
	// TermYears is the requested loan term in years.
	TermYears int
	// Age is the applicant's age in years.
	Age int
	// EmploymentYears is the tenure in the current job, in years.
	EmploymentYears float64
	// Children is the number of dependent children.
	Children int
	// ExistingCharges is the pre-existing monthly obligations in euros.
	ExistingCharges float64
	// DownPayment is the personal contribution in euros.
	DownPayment float64
}

// MonthlyIncome returns the net monthly income.
func (a CreditApplication) MonthlyIncome() float64 {
	return a.AnnualIncome / 12
}

// FamilySize returns the household size (applicant plus children).
func (a CreditApplication) FamilySize() int {
	return a.Children + 1
}

// Validate enforces the boundary schema the original intake form imposed.
// The decision engine itself accepts any numeric application (out-of-range
// ages travel through the hard-refusal rules); transports call Validate
// before handing an application to the engine.
func (a CreditApplication) Validate(p LendingPolicy) error {
	switch {
	case a.AnnualIncome <= 0:
		return fmt.Errorf("%w: annual income must be positive", ErrInvalidApplication)
	case a.Principal <= 0:
		return fmt.Errorf("%w: principal must be positive", ErrInvalidApplication)
	case a.TermYears < 1 || a.TermYears > p.MaxTermRealEstate:
		return fmt.Errorf("%w: term must be between 1 and %d years", ErrInvalidApplication, p.MaxTermRealEstate)
	case a.Age < p.MinAge || a.Age > p.MaxAgeAtMaturity:
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidApplication, p.MinAge, p.MaxAgeAtMaturity)
	case a.EmploymentYears < 0:
		return fmt.Errorf("%w: employment tenure must be non-negative", ErrInvalidApplication)
	case a.Children < 0:
		return fmt.Errorf("%w: children count must be non-negative", ErrInvalidApplication)
	case a.ExistingCharges < 0:
		return fmt.Errorf("%w: existing charges must be non-negative", ErrInvalidApplication)
	case a.DownPayment < 0:
		return fmt.Errorf("%w: down payment must be non-negative", ErrInvalidApplication)
	}
	return nil
}
