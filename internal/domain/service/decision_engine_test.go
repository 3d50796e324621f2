package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// fakeClassifier returns a fixed probability or error.
type fakeClassifier struct {
	probability float64
	err         error
}

func (f fakeClassifier) PredictProba(_ context.Context, _ valueobject.FeatureVector) (float64, error) {
	return f.probability, f.err
}

func newEngine(classifier fakeClassifier) *service.DecisionEngine {
	scorer := service.NewRiskScorer(classifier, nil)
	return service.NewDecisionEngine(valueobject.DefaultLendingPolicy(), scorer)
}

func TestDecisionEngine_SolidRealEstateApplication(t *testing.T) {
	engine := newEngine(fakeClassifier{probability: 0.10})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    50_000,
		Principal:       200_000,
		TermYears:       20,
		Age:             35,
		EmploymentYears: 5,
		Children:        2,
		ExistingCharges: 500,
		DownPayment:     20_000,
	})

	assert.False(t, outcome.HardRefusal)
	assert.Equal(t, valueobject.DecisionAccepted, outcome.Decision)
	assert.True(t, outcome.Profile.CreditType.Equal(valueobject.CreditTypeRealEstate))
	assert.Equal(t, 0.035, outcome.Profile.AnnualRate)
	assert.InDelta(t, 1159.92, outcome.Profile.MonthlyPayment, 0.05)

	// High debt ratio (-25) and low down payment (-10), strong tenure (+10).
	assert.InDelta(t, 75.0, outcome.Scores.BusinessScore, 1e-9)
	assert.InDelta(t, 90.0, outcome.Scores.MLScore, 1e-9)
	assert.InDelta(t, 81.0, outcome.Scores.FinalScore, 1e-9)

	assert.Contains(t, outcome.Strengths, "excellent employment stability: 5 years")
	require.Len(t, outcome.Alerts, 2)
	assert.Contains(t, outcome.Alerts[0].Message, "high debt ratio")
	assert.Contains(t, outcome.Alerts[1].Message, "low down payment")
}

func TestDecisionEngine_ExcessiveDebtRatio_HardRefusal(t *testing.T) {
	// Even a perfect model score cannot rescue an over-indebted applicant.
	engine := newEngine(fakeClassifier{probability: 0.0})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome: 12_000,
		Principal:    300_000,
		TermYears:    20,
		Age:          40,
	})

	assert.True(t, outcome.HardRefusal)
	assert.Equal(t, service.RefusalExcessiveDebtRatio, outcome.RefusalReason)
	assert.Equal(t, valueobject.DecisionRefused, outcome.Decision)
	assert.InDelta(t, 100.0, outcome.Scores.MLScore, 1e-9)
}

func TestDecisionEngine_UnderageApplicant_HardRefusal(t *testing.T) {
	engine := newEngine(fakeClassifier{probability: 0.05})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    60_000,
		Principal:       50_000,
		TermYears:       5,
		Age:             17,
		EmploymentYears: 6,
	})

	assert.True(t, outcome.HardRefusal)
	assert.Equal(t, service.RefusalMinimumAge, outcome.RefusalReason)
	assert.Equal(t, valueobject.DecisionRefused, outcome.Decision)
}

func TestDecisionEngine_RefusalReasonPrecedence(t *testing.T) {
	// Both the disposable-income floor and the minimum age are violated;
	// only the first matching reason is reported.
	engine := newEngine(fakeClassifier{probability: 0.20})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome: 9_000,
		Principal:    32_000,
		TermYears:    10,
		Age:          17,
	})

	assert.True(t, outcome.HardRefusal)
	assert.Equal(t, service.RefusalInsufficientDisposable, outcome.RefusalReason)
}

func TestDecisionEngine_ClassifierFailure_NeutralScore(t *testing.T) {
	engine := newEngine(fakeClassifier{err: errors.New("model server down")})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    50_000,
		Principal:       200_000,
		TermYears:       20,
		Age:             35,
		EmploymentYears: 5,
		Children:        2,
		ExistingCharges: 500,
		DownPayment:     20_000,
	})

	// Graceful degradation: the decision is still rendered and the model
	// contribution pins to the neutral probability.
	assert.Equal(t, service.NeutralProbability, outcome.Scores.DefaultProbability)
	assert.Equal(t, 50.0, outcome.Scores.MLScore)
	assert.False(t, outcome.Decision.IsZero())
}

func TestDecisionEngine_OutOfRangeProbability_NeutralScore(t *testing.T) {
	engine := newEngine(fakeClassifier{probability: 1.7})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome: 50_000,
		Principal:    100_000,
		TermYears:    15,
		Age:          30,
	})

	assert.Equal(t, 50.0, outcome.Scores.MLScore)
}

func TestDecisionEngine_BusinessScoreClampedAtZero(t *testing.T) {
	engine := newEngine(fakeClassifier{probability: 0.5})

	// Every penalty rule fires at once.
	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    12_000,
		Principal:       300_000,
		TermYears:       20,
		Age:             17,
		EmploymentYears: 0.2,
	})

	assert.Equal(t, 0.0, outcome.Scores.BusinessScore)
	assert.Equal(t, valueobject.DecisionRefused, outcome.Decision)
}

func TestDecisionEngine_BusinessScoreClampedAtHundred(t *testing.T) {
	engine := newEngine(fakeClassifier{probability: 0.05})

	// Excellent ratio, excellent disposable income, strong tenure, big down
	// payment: +40 in bonuses on a base of 100.
	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    120_000,
		Principal:       150_000,
		TermYears:       15,
		Age:             40,
		EmploymentYears: 10,
		DownPayment:     60_000,
	})

	assert.False(t, outcome.HardRefusal)
	assert.Equal(t, 100.0, outcome.Scores.BusinessScore)
	assert.Equal(t, valueobject.DecisionAccepted, outcome.Decision)
}

func TestDecisionEngine_ConditionalBand(t *testing.T) {
	// Business score 75 with a weak model score lands between the two
	// thresholds.
	engine := newEngine(fakeClassifier{probability: 0.70})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    50_000,
		Principal:       200_000,
		TermYears:       20,
		Age:             35,
		EmploymentYears: 5,
		Children:        2,
		ExistingCharges: 500,
		DownPayment:     20_000,
	})

	// 0.6*75 + 0.4*30 = 57
	assert.InDelta(t, 57.0, outcome.Scores.FinalScore, 1e-9)
	assert.Equal(t, valueobject.DecisionAcceptedWithConditions, outcome.Decision)
}

func TestDecisionEngine_FindingOrderIsStable(t *testing.T) {
	engine := newEngine(fakeClassifier{probability: 0.5})

	outcome := engine.Analyze(context.Background(), valueobject.CreditApplication{
		AnnualIncome:    12_000,
		Principal:       300_000,
		TermYears:       20,
		Age:             17,
		EmploymentYears: 0.2,
	})

	require.GreaterOrEqual(t, len(outcome.Alerts), 4)
	assert.Contains(t, outcome.Alerts[0].Message, "critical debt ratio")
	assert.Contains(t, outcome.Alerts[1].Message, "insufficient disposable income")
	assert.Contains(t, outcome.Alerts[2].Message, "applicant below minimum age")
	assert.Contains(t, outcome.Alerts[3].Message, "short employment tenure")
}
