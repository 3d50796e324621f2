package valueobject

import "errors"

// ---------------------------------------------------------------------------
// LendingPolicy – immutable business configuration
// ---------------------------------------------------------------------------

// LendingPolicy carries the bank-wide lending constants. It is constructed
// once at process start and passed explicitly into the calculator and the
// decision engine; nothing reads it as ambient global state.
//
// The thresholds follow the French HCSF 2022 norms the scoring model was
// calibrated against. They are empirically chosen and preserved as-is.
type LendingPolicy struct {
	// MaxDebtRatio is the maximum recommended debt-to-income ratio (0.35 = 35%).
	MaxDebtRatio float64
	// MinDisposable is the minimum monthly disposable income per household, in euros.
	MinDisposable float64
	// MinDisposablePerChild is the additional disposable income required per child.
	MinDisposablePerChild float64
	// MaxAgeAtMaturity is the maximum applicant age at the end of the loan.
	MaxAgeAtMaturity int
	// MinAge is the minimum applicant age.
	MinAge int
	// MaxTermRealEstate is the maximum real-estate loan term in years.
	MaxTermRealEstate int
	// MaxTermConsumer is the maximum consumer loan term in years.
	MaxTermConsumer int
	// RateRealEstate is the annual interest rate applied to real-estate credits.
	RateRealEstate float64
	// RateConsumer is the annual interest rate applied to consumer credits.
	RateConsumer float64
	// MinDownPaymentRatio is the minimum recommended down-payment ratio.
	MinDownPaymentRatio float64
	// RealEstateThreshold is the principal, in euros, at or above which a
	// credit is classified as real estate.
	RealEstateThreshold float64
}

// DefaultLendingPolicy returns the production policy constants.
func DefaultLendingPolicy() LendingPolicy {
	return LendingPolicy{
		MaxDebtRatio:          0.35,
		MinDisposable:         700,
		MinDisposablePerChild: 300,
		MaxAgeAtMaturity:      75,
		MinAge:                18,
		MaxTermRealEstate:     25,
		MaxTermConsumer:       7,
		RateRealEstate:        0.035,
		RateConsumer:          0.065,
		MinDownPaymentRatio:   0.10,
		RealEstateThreshold:   75_000,
	}
}

// Validate reports whether the policy values are internally consistent.
func (p LendingPolicy) Validate() error {
	switch {
	case p.MaxDebtRatio <= 0 || p.MaxDebtRatio >= 1:
		return errors.New("max debt ratio must be in (0, 1)")
	case p.MinDisposable < 0 || p.MinDisposablePerChild < 0:
		return errors.New("disposable income minimums must be non-negative")
	case p.MinAge <= 0 || p.MaxAgeAtMaturity <= p.MinAge:
		return errors.New("age bounds are inconsistent")
	case p.MaxTermRealEstate <= 0 || p.MaxTermConsumer <= 0:
		return errors.New("term limits must be positive")
	case p.RateRealEstate < 0 || p.RateConsumer < 0:
		return errors.New("interest rates must be non-negative")
	case p.MinDownPaymentRatio < 0 || p.MinDownPaymentRatio >= 1:
		return errors.New("min down-payment ratio must be in [0, 1)")
	case p.RealEstateThreshold <= 0:
		return errors.New("real-estate threshold must be positive")
	}
	return nil
}
