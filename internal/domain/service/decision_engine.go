package service

import (
	"context"
	"fmt"

	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// Scoring policy: the business score starts at 100, each rule applies a
// delta, and the final score blends 60% business rules with 40% model.
const (
	baseBusinessScore = 100.0

	businessWeight = 0.6
	mlWeight       = 0.4

	acceptThreshold      = 70.0
	conditionalThreshold = 50.0

	// criticalDebtRatio and minDisposableFloor are knockout levels distinct
	// from the recommended policy maximums.
	criticalDebtRatio  = 0.50
	minDisposableFloor = 400.0

	excellentDebtRatio = 0.25
	goodDebtRatio      = 0.33

	shortTenureYears  = 0.5
	strongTenureYears = 5.0
	goodTenureYears   = 2.0

	strongDownPaymentRatio = 0.20
)

// Refusal reasons for the knockout rules, in precedence order.
const (
	RefusalExcessiveDebtRatio     = "excessive debt ratio"
	RefusalInsufficientDisposable = "insufficient disposable income"
	RefusalMinimumAge             = "minimum age not met"
)

// ---------------------------------------------------------------------------
// DecisionEngine – hybrid rule + model credit decisioning
// ---------------------------------------------------------------------------

// DecisionEngine renders accept/conditional/refuse decisions by combining
// the business-rule score with the classifier's default probability. Each
// Analyze call is a stateless transformation; the engine is safe for
// concurrent use as long as the classifier supports concurrent inference.
type DecisionEngine struct {
	policy valueobject.LendingPolicy
	calc   Calculator
	scorer *RiskScorer
}

// NewDecisionEngine wires the engine with its policy and risk scorer.
func NewDecisionEngine(policy valueobject.LendingPolicy, scorer *RiskScorer) *DecisionEngine {
	return &DecisionEngine{
		policy: policy,
		calc:   NewCalculator(policy),
		scorer: scorer,
	}
}

// Policy returns the lending policy the engine was built with.
func (e *DecisionEngine) Policy() valueobject.LendingPolicy { return e.policy }

// Calculator returns the engine's calculator.
func (e *DecisionEngine) Calculator() Calculator { return e.calc }

// ruleResult is the outcome of one business rule: a score delta plus the
// findings it raised.
type ruleResult struct {
	delta     float64
	alerts    []model.Finding
	strengths []string
}

type ruleFunc func(app valueobject.CreditApplication, p model.FinancialProfile) ruleResult

// Analyze performs a complete analysis of one application.
func (e *DecisionEngine) Analyze(ctx context.Context, app valueobject.CreditApplication) model.DecisionOutcome {
	profile := e.buildProfile(app)

	// Rules run in a fixed order; finding order is part of the contract.
	rules := []ruleFunc{
		e.debtRatioRule,
		e.disposableIncomeRule,
		e.ageRule,
		e.employmentTenureRule,
		e.downPaymentRule,
	}

	score := baseBusinessScore
	var alerts []model.Finding
	var strengths []string
	for _, rule := range rules {
		r := rule(app, profile)
		score += r.delta
		alerts = append(alerts, r.alerts...)
		strengths = append(strengths, r.strengths...)
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	probability := e.scorer.DefaultProbability(ctx, app, profile.MonthlyPayment, app.TermYears)
	mlScore := (1 - probability) * 100
	finalScore := businessWeight*score + mlWeight*mlScore

	hardRefusal, refusalReason := e.hardRefusal(app, profile)

	var decision valueobject.Decision
	switch {
	case hardRefusal:
		decision = valueobject.DecisionRefused
	case finalScore >= acceptThreshold:
		decision = valueobject.DecisionAccepted
	case finalScore >= conditionalThreshold:
		decision = valueobject.DecisionAcceptedWithConditions
	default:
		decision = valueobject.DecisionRefused
	}

	return model.DecisionOutcome{
		Decision: decision,
		Scores: model.ScoreBundle{
			BusinessScore:      score,
			MLScore:            mlScore,
			FinalScore:         finalScore,
			DefaultProbability: probability,
		},
		Alerts:        alerts,
		Strengths:     strengths,
		HardRefusal:   hardRefusal,
		RefusalReason: refusalReason,
		Profile:       profile,
	}
}

// buildProfile computes every financial derivative once.
func (e *DecisionEngine) buildProfile(app valueobject.CreditApplication) model.FinancialProfile {
	rate := e.calc.InterestRate(app.Principal)
	payment := e.calc.MonthlyPayment(app.Principal, rate, app.TermYears)
	obligation := payment + app.ExistingCharges
	monthlyIncome := app.MonthlyIncome()
	total, interest := e.calc.TotalCost(app.Principal, rate, app.TermYears)

	return model.FinancialProfile{
		CreditType:             e.calc.CreditType(app.Principal),
		AnnualRate:             rate,
		MonthlyPayment:         payment,
		TotalMonthlyObligation: obligation,
		DebtRatio:              e.calc.DebtRatio(obligation, monthlyIncome),
		DisposableIncome:       monthlyIncome - obligation,
		TotalCost:              total,
		TotalInterest:          interest,
		MaxBorrowingCapacity:   e.calc.MaxBorrowingCapacity(monthlyIncome, rate, app.TermYears, app.ExistingCharges),
		AgeAtMaturity:          app.Age + app.TermYears,
	}
}

// hardRefusal evaluates the knockout rules independent of any score. Only
// the first matching reason is reported.
func (e *DecisionEngine) hardRefusal(app valueobject.CreditApplication, p model.FinancialProfile) (bool, string) {
	switch {
	case p.DebtRatio > criticalDebtRatio:
		return true, RefusalExcessiveDebtRatio
	case p.DisposableIncome < minDisposableFloor:
		return true, RefusalInsufficientDisposable
	case app.Age < e.policy.MinAge:
		return true, RefusalMinimumAge
	}
	return false, ""
}

// ---------------------------------------------------------------------------
// Business rules, in evaluation order
// ---------------------------------------------------------------------------

func (e *DecisionEngine) debtRatioRule(_ valueobject.CreditApplication, p model.FinancialProfile) ruleResult {
	ratio := p.DebtRatio
	switch {
	case ratio > criticalDebtRatio:
		return ruleResult{delta: -40, alerts: []model.Finding{{
			Severity: valueobject.SeverityDanger,
			Message:  fmt.Sprintf("critical debt ratio: %.1f%%", ratio*100),
		}}}
	case ratio > e.policy.MaxDebtRatio:
		return ruleResult{delta: -25, alerts: []model.Finding{{
			Severity: valueobject.SeverityWarning,
			Message:  fmt.Sprintf("high debt ratio: %.1f%% (max %.0f%%)", ratio*100, e.policy.MaxDebtRatio*100),
		}}}
	case ratio <= excellentDebtRatio:
		return ruleResult{delta: +10, strengths: []string{
			fmt.Sprintf("excellent debt ratio: %.1f%%", ratio*100),
		}}
	case ratio <= goodDebtRatio:
		return ruleResult{strengths: []string{
			fmt.Sprintf("good debt ratio: %.1f%%", ratio*100),
		}}
	}
	return ruleResult{}
}

func (e *DecisionEngine) disposableIncomeRule(app valueobject.CreditApplication, p model.FinancialProfile) ruleResult {
	threshold := e.policy.MinDisposable + float64(app.Children)*e.policy.MinDisposablePerChild
	disposable := p.DisposableIncome

	switch {
	case disposable < minDisposableFloor:
		return ruleResult{delta: -35, alerts: []model.Finding{{
			Severity: valueobject.SeverityDanger,
			Message:  fmt.Sprintf("insufficient disposable income: %.0f EUR", disposable),
		}}}
	case disposable < threshold:
		return ruleResult{delta: -20, alerts: []model.Finding{{
			Severity: valueobject.SeverityWarning,
			Message:  fmt.Sprintf("tight disposable income: %.0f EUR (recommended: %.0f EUR)", disposable, threshold),
		}}}
	case disposable > 2*threshold:
		return ruleResult{delta: +10, strengths: []string{
			fmt.Sprintf("excellent disposable income: %.0f EUR", disposable),
		}}
	}
	return ruleResult{}
}

// ageRule fires both checks independently: an underage applicant with a
// long term can collect both findings.
func (e *DecisionEngine) ageRule(app valueobject.CreditApplication, p model.FinancialProfile) ruleResult {
	var r ruleResult
	if app.Age < e.policy.MinAge {
		r.delta -= 50
		r.alerts = append(r.alerts, model.Finding{
			Severity: valueobject.SeverityDanger,
			Message:  fmt.Sprintf("applicant below minimum age: %d", app.Age),
		})
	}
	if p.AgeAtMaturity > e.policy.MaxAgeAtMaturity {
		r.delta -= 15
		r.alerts = append(r.alerts, model.Finding{
			Severity: valueobject.SeverityWarning,
			Message:  fmt.Sprintf("high age at loan maturity: %d", p.AgeAtMaturity),
		})
	}
	return r
}

func (e *DecisionEngine) employmentTenureRule(app valueobject.CreditApplication, _ model.FinancialProfile) ruleResult {
	tenure := app.EmploymentYears
	switch {
	case tenure < shortTenureYears:
		return ruleResult{delta: -15, alerts: []model.Finding{{
			Severity: valueobject.SeverityWarning,
			Message:  fmt.Sprintf("short employment tenure: %.1f years", tenure),
		}}}
	case tenure >= strongTenureYears:
		return ruleResult{delta: +10, strengths: []string{
			fmt.Sprintf("excellent employment stability: %.0f years", tenure),
		}}
	case tenure >= goodTenureYears:
		return ruleResult{strengths: []string{
			fmt.Sprintf("good employment tenure: %.1f years", tenure),
		}}
	}
	return ruleResult{}
}

// downPaymentRule only applies to real-estate credits.
func (e *DecisionEngine) downPaymentRule(app valueobject.CreditApplication, p model.FinancialProfile) ruleResult {
	if !p.CreditType.Equal(valueobject.CreditTypeRealEstate) {
		return ruleResult{}
	}

	var ratio float64
	if app.Principal+app.DownPayment > 0 {
		ratio = app.DownPayment / (app.Principal + app.DownPayment)
	}

	switch {
	case ratio >= strongDownPaymentRatio:
		return ruleResult{delta: +10, strengths: []string{
			fmt.Sprintf("substantial down payment: %.0f%%", ratio*100),
		}}
	case ratio < e.policy.MinDownPaymentRatio:
		return ruleResult{delta: -10, alerts: []model.Finding{{
			Severity: valueobject.SeverityWarning,
			Message:  fmt.Sprintf("low down payment: %.1f%%", ratio*100),
		}}}
	}
	return ruleResult{}
}
