package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// ErrDecisionNotFound is returned when a decision record does not exist.
var ErrDecisionNotFound = errors.New("decision not found")

// ---------------------------------------------------------------------------
// Analysis value objects – produced once per call, never mutated after
// ---------------------------------------------------------------------------

// FinancialProfile holds the financial derivatives computed once at the
// start of an analysis.
type FinancialProfile struct {
	CreditType valueobject.CreditType
	// AnnualRate is the interest rate applied for the credit type.
	AnnualRate float64
	// MonthlyPayment is the amortizing payment for the requested principal.
	MonthlyPayment float64
	// TotalMonthlyObligation is the payment plus existing charges.
	TotalMonthlyObligation float64
	// DebtRatio is the total obligation over monthly income (+Inf when the
	// income is not usable).
	DebtRatio float64
	// DisposableIncome is the monthly income left after all obligations.
	DisposableIncome float64
	// TotalCost is the sum of all payments over the loan term.
	TotalCost float64
	// TotalInterest is the total cost minus the principal.
	TotalInterest float64
	// MaxBorrowingCapacity is the largest principal affordable at the policy
	// maximum debt ratio.
	MaxBorrowingCapacity float64
	// AgeAtMaturity is the applicant's projected age when the loan ends.
	AgeAtMaturity int
}

// ScoreBundle groups the three scores and the raw model probability.
type ScoreBundle struct {
	// BusinessScore is the rule-based score, clamped to [0, 100].
	BusinessScore float64
	// MLScore is (1 - default probability) * 100.
	MLScore float64
	// FinalScore blends 60% business score with 40% ML score.
	FinalScore float64
	// DefaultProbability is the raw classifier output in [0, 1].
	DefaultProbability float64
}

// Finding is one qualitative observation raised by a business rule.
type Finding struct {
	Severity valueobject.Severity
	Message  string
}

// AmortizationRow is one yearly line of an amortization schedule.
type AmortizationRow struct {
	Year             int
	PrincipalRepaid  float64
	InterestPaid     float64
	RemainingBalance float64
}

// DecisionOutcome is the complete result of one analysis. Produced once,
// immutable, returned to the caller.
type DecisionOutcome struct {
	Decision valueobject.Decision
	Scores   ScoreBundle
	// Alerts and Strengths follow rule-evaluation order.
	Alerts    []Finding
	Strengths []string
	// HardRefusal is set when a knockout rule fired regardless of score.
	HardRefusal bool
	// RefusalReason is set iff HardRefusal is true; first matching reason wins.
	RefusalReason string
	Profile       FinancialProfile
}

// DecisionRecord is the audit-trail form of a rendered decision.
type DecisionRecord struct {
	ID          uuid.UUID
	Application valueobject.CreditApplication
	Outcome     DecisionOutcome
	CreatedAt   time.Time
}
