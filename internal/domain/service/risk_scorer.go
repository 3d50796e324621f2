package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/creditscorepro/scoring-service/internal/domain/port"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// NeutralProbability is the default-probability fallback used whenever the
// classifier is unavailable or misbehaves. The engine degrades to pure
// business rules instead of blocking decisions.
const NeutralProbability = 0.5

// ErrClassifierUnavailable is returned when no classifier is configured.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// defaultFeatureNames is the column set of the trained default model
// (Home Credit schema plus the engineered ratios). Used when no explicit
// feature list accompanies the model artifact.
var defaultFeatureNames = []string{
	// categorical columns (always missing for a live application; the
	// model pipeline imputes them)
	"NAME_CONTRACT_TYPE", "CODE_GENDER", "FLAG_OWN_CAR", "FLAG_OWN_REALTY",
	"NAME_TYPE_SUITE", "NAME_INCOME_TYPE", "NAME_EDUCATION_TYPE",
	"NAME_FAMILY_STATUS", "NAME_HOUSING_TYPE", "OCCUPATION_TYPE",
	"WEEKDAY_APPR_PROCESS_START", "ORGANIZATION_TYPE", "FONDKAPREMONT_MODE",
	"HOUSETYPE_MODE", "WALLSMATERIAL_MODE", "EMERGENCYSTATE_MODE",
	// numeric columns
	"CNT_CHILDREN", "AMT_INCOME_TOTAL", "AMT_CREDIT", "AMT_ANNUITY",
	"AMT_GOODS_PRICE", "REGION_POPULATION_RELATIVE", "OWN_CAR_AGE",
	"FLAG_MOBIL", "FLAG_EMP_PHONE", "FLAG_WORK_PHONE", "FLAG_CONT_MOBILE",
	"FLAG_PHONE", "FLAG_EMAIL", "CNT_FAM_MEMBERS", "REGION_RATING_CLIENT",
	"AGE_YEARS", "EMPLOYED_YEARS", "REGISTRATION_YEARS", "ID_PUBLISH_YEARS",
	// engineered columns
	"CREDIT_INCOME_RATIO", "ANNUITY_INCOME_RATIO", "GOODS_CREDIT_RATIO",
	"CREDIT_TERM_MONTHS", "INCOME_MONTHLY", "DEBT_RATIO", "RESTE_A_VIVRE",
	"DUREE_PRET_YEARS", "AGE_FIN_PRET",
}

// DefaultFeatureNames returns a copy of the built-in classifier feature list.
func DefaultFeatureNames() []string {
	out := make([]string, len(defaultFeatureNames))
	copy(out, defaultFeatureNames)
	return out
}

// ---------------------------------------------------------------------------
// RiskScorer – default-probability adapter
// ---------------------------------------------------------------------------

// RiskScorer maps a raw application into the fixed feature vector the
// classifier expects and invokes it. Any inference failure collapses to
// NeutralProbability at the DefaultProbability boundary.
type RiskScorer struct {
	classifier port.Classifier
	features   []string
}

// NewRiskScorer creates a scorer for the given classifier. An empty feature
// list selects the built-in default columns. A nil classifier is legal: the
// scorer then always reports the neutral probability.
func NewRiskScorer(classifier port.Classifier, features []string) *RiskScorer {
	if len(features) == 0 {
		features = DefaultFeatureNames()
	}
	return &RiskScorer{classifier: classifier, features: features}
}

// BuildFeatures assembles the single-row feature vector for an application.
// Fields not derivable from the application keep the missing marker.
func (s *RiskScorer) BuildFeatures(app valueobject.CreditApplication, monthlyPayment float64, termYears int) valueobject.FeatureVector {
	v := valueobject.NewFeatureVector(s.features)

	annuity := monthlyPayment * 12

	v.Set("AMT_INCOME_TOTAL", app.AnnualIncome)
	v.Set("AMT_CREDIT", app.Principal)
	v.Set("AGE_YEARS", float64(app.Age))
	v.Set("EMPLOYED_YEARS", app.EmploymentYears)
	v.Set("CNT_CHILDREN", float64(app.Children))
	v.Set("CNT_FAM_MEMBERS", float64(app.FamilySize()))
	v.Set("AMT_ANNUITY", annuity)

	if app.AnnualIncome > 0 {
		v.Set("CREDIT_INCOME_RATIO", app.Principal/app.AnnualIncome)
		v.Set("ANNUITY_INCOME_RATIO", annuity/app.AnnualIncome)
		v.Set("DEBT_RATIO", monthlyPayment/app.MonthlyIncome())
	}
	v.Set("INCOME_MONTHLY", app.MonthlyIncome())
	v.Set("RESTE_A_VIVRE", app.MonthlyIncome()-monthlyPayment)
	v.Set("DUREE_PRET_YEARS", float64(termYears))
	v.Set("AGE_FIN_PRET", float64(app.Age+termYears))
	v.Set("CREDIT_TERM_MONTHS", float64(termYears*12))

	return v
}

// EstimateProbability runs the classifier and returns its raw outcome.
// Kept separate from DefaultProbability so failure causes stay inspectable.
func (s *RiskScorer) EstimateProbability(ctx context.Context, app valueobject.CreditApplication, monthlyPayment float64, termYears int) (float64, error) {
	if s.classifier == nil {
		return 0, ErrClassifierUnavailable
	}

	p, err := s.classifier.PredictProba(ctx, s.BuildFeatures(app, monthlyPayment, termYears))
	if err != nil {
		return 0, fmt.Errorf("predict default probability: %w", err)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("classifier returned probability out of range: %v", p)
	}
	return p, nil
}

// DefaultProbability is the graceful-degradation boundary: classifier
// failures of any kind surface as the neutral probability, never as errors.
func (s *RiskScorer) DefaultProbability(ctx context.Context, app valueobject.CreditApplication, monthlyPayment float64, termYears int) float64 {
	p, err := s.EstimateProbability(ctx, app, monthlyPayment, termYears)
	if err != nil {
		return NeutralProbability
	}
	return p
}
