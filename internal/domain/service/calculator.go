package service

import (
	"math"

	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Calculator – pure credit arithmetic
// ---------------------------------------------------------------------------

// Calculator bundles the loan arithmetic used across the decision engine and
// the calculator endpoints. All methods are pure float64 functions; rounding
// happens only at presentation boundaries.
type Calculator struct {
	policy valueobject.LendingPolicy
}

// NewCalculator creates a calculator bound to the given lending policy.
func NewCalculator(policy valueobject.LendingPolicy) Calculator {
	return Calculator{policy: policy}
}

// MonthlyPayment computes the fixed amortizing payment for a loan:
//
//	P * r * (1+r)^n / ((1+r)^n - 1) with r = annualRate/12, n = years*12
//
// A zero rate degrades to an even split of the principal.
func (c Calculator) MonthlyPayment(principal, annualRate float64, years int) float64 {
	n := float64(years * 12)
	if annualRate == 0 {
		return principal / n
	}

	r := annualRate / 12
	factor := math.Pow(1+r, n)
	return principal * (r * factor) / (factor - 1)
}

// TotalCost returns the sum of all payments over the term and the interest
// share of that sum.
func (c Calculator) TotalCost(principal, annualRate float64, years int) (total, interest float64) {
	total = c.MonthlyPayment(principal, annualRate, years) * float64(years*12)
	return total, total - principal
}

// DebtRatio returns payment/monthlyIncome. A non-positive income yields
// +Inf: an unusable ratio is a meaningful output here, not an error.
func (c Calculator) DebtRatio(payment, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return math.Inf(1)
	}
	return payment / monthlyIncome
}

// MaxBorrowingCapacity inverts the amortization formula: it returns the
// principal whose payment equals the affordable payment at the policy
// maximum debt ratio, net of existing charges. Returns 0 when nothing is
// affordable.
func (c Calculator) MaxBorrowingCapacity(monthlyIncome, annualRate float64, years int, existingCharges float64) float64 {
	maxPayment := monthlyIncome*c.policy.MaxDebtRatio - existingCharges
	if maxPayment <= 0 {
		return 0
	}

	n := float64(years * 12)
	if annualRate == 0 {
		return maxPayment * n
	}

	r := annualRate / 12
	factor := math.Pow(1+r, n)
	return maxPayment * (factor - 1) / (r * factor)
}

// CreditType classifies the credit by principal against the policy
// real-estate threshold.
func (c Calculator) CreditType(amount float64) valueobject.CreditType {
	if amount >= c.policy.RealEstateThreshold {
		return valueobject.CreditTypeRealEstate
	}
	return valueobject.CreditTypeConsumer
}

// InterestRate returns the policy rate for the credit type of the amount.
func (c Calculator) InterestRate(amount float64) float64 {
	if amount >= c.policy.RealEstateThreshold {
		return c.policy.RateRealEstate
	}
	return c.policy.RateConsumer
}

// AmortizationSchedule simulates month-by-month amortization and aggregates
// it into yearly rows. Once the balance reaches zero within a year the
// remaining months contribute nothing further; the reported balance never
// goes below zero.
func (c Calculator) AmortizationSchedule(principal, annualRate float64, years int) []model.AmortizationRow {
	payment := c.MonthlyPayment(principal, annualRate, years)
	monthlyRate := annualRate / 12
	balance := principal

	schedule := make([]model.AmortizationRow, 0, years)
	for year := 1; year <= years; year++ {
		var interestPaid, principalRepaid float64

		for month := 0; month < 12; month++ {
			if balance <= 0 {
				break
			}
			interest := balance * monthlyRate
			repaid := payment - interest
			balance -= repaid
			interestPaid += interest
			principalRepaid += repaid
		}

		schedule = append(schedule, model.AmortizationRow{
			Year:             year,
			PrincipalRepaid:  principalRepaid,
			InterestPaid:     interestPaid,
			RemainingBalance: math.Max(0, balance),
		})
	}

	return schedule
}
