package dto

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// AnalyzeRequest carries a raw credit application. Optional fields default
// to zero when omitted from the JSON payload.
type AnalyzeRequest struct {
	AnnualIncome    float64 `json:"annual_income"`
	Principal       float64 `json:"principal"`
	TermYears       int     `json:"term_years"`
	Age             int     `json:"age"`
	EmploymentYears float64 `json:"employment_years"`
	Children        int     `json:"children"`
	ExistingCharges float64 `json:"existing_charges"`
	DownPayment     float64 `json:"down_payment"`
}

// ToApplication converts the request into the domain value object.
func (r AnalyzeRequest) ToApplication() valueobject.CreditApplication {
	return valueobject.CreditApplication{
		AnnualIncome:    r.AnnualIncome,
		Principal:       r.Principal,
		TermYears:       r.TermYears,
		Age:             r.Age,
		EmploymentYears: r.EmploymentYears,
		Children:        r.Children,
		ExistingCharges: r.ExistingCharges,
		DownPayment:     r.DownPayment,
	}
}

// PaymentRequest asks for a monthly payment computation.
type PaymentRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
}

// CapacityRequest asks for a maximum borrowing capacity computation.
type CapacityRequest struct {
	MonthlyIncome   float64 `json:"monthly_income"`
	AnnualRate      float64 `json:"annual_rate"`
	TermYears       int     `json:"term_years"`
	ExistingCharges float64 `json:"existing_charges"`
}

// ScheduleRequest asks for an amortization schedule.
type ScheduleRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// FindingResponse is one alert raised by a business rule.
type FindingResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// FinancialDetails is the external view of the financial profile. Monetary
// values are rounded to cents at this boundary.
type FinancialDetails struct {
	CreditType           string  `json:"credit_type"`
	AnnualRate           float64 `json:"annual_rate"`
	MonthlyPayment       float64 `json:"monthly_payment"`
	TotalMonthlyCharge   float64 `json:"total_monthly_charge"`
	DebtRatio            float64 `json:"debt_ratio"`
	DisposableIncome     float64 `json:"disposable_income"`
	TotalCost            float64 `json:"total_cost"`
	TotalInterest        float64 `json:"total_interest"`
	MaxBorrowingCapacity float64 `json:"max_borrowing_capacity"`
	AgeAtMaturity        int     `json:"age_at_maturity"`
}

// AnalysisResponse is the complete decision payload.
type AnalysisResponse struct {
	AnalysisID         string            `json:"analysis_id"`
	Decision           string            `json:"decision"`
	FinalScore         float64           `json:"final_score"`
	BusinessScore      float64           `json:"business_score"`
	MLScore            float64           `json:"ml_score"`
	DefaultProbability float64           `json:"default_probability"`
	Alerts             []FindingResponse `json:"alerts"`
	Strengths          []string          `json:"strengths"`
	HardRefusal        bool              `json:"hard_refusal"`
	RefusalReason      string            `json:"refusal_reason,omitempty"`
	Details            FinancialDetails  `json:"details"`
}

// PaymentResponse is the result of a payment computation.
type PaymentResponse struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalCost      float64 `json:"total_cost"`
	TotalInterest  float64 `json:"total_interest"`
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	TermYears      int     `json:"term_years"`
}

// CapacityResponse is the result of a capacity computation.
type CapacityResponse struct {
	MaxBorrowingCapacity float64 `json:"max_borrowing_capacity"`
	MonthlyIncome        float64 `json:"monthly_income"`
	AnnualRate           float64 `json:"annual_rate"`
	TermYears            int     `json:"term_years"`
	ExistingCharges      float64 `json:"existing_charges"`
}

// ScheduleRow is one yearly amortization line.
type ScheduleRow struct {
	Year             int     `json:"year"`
	PrincipalRepaid  float64 `json:"principal_repaid"`
	InterestPaid     float64 `json:"interest_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// ScheduleResponse is the yearly amortization schedule.
type ScheduleResponse struct {
	Principal  float64       `json:"principal"`
	AnnualRate float64       `json:"annual_rate"`
	TermYears  int           `json:"term_years"`
	Rows       []ScheduleRow `json:"rows"`
}

// DecisionRecordResponse is one entry of the decision audit trail.
type DecisionRecordResponse struct {
	AnalysisResponse
	Application AnalyzeRequest `json:"application"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// FromOutcome maps a domain outcome into the response payload.
func FromOutcome(analysisID string, o model.DecisionOutcome) AnalysisResponse {
	alerts := make([]FindingResponse, 0, len(o.Alerts))
	for _, a := range o.Alerts {
		alerts = append(alerts, FindingResponse{
			Severity: a.Severity.String(),
			Message:  a.Message,
		})
	}

	strengths := o.Strengths
	if strengths == nil {
		strengths = []string{}
	}

	return AnalysisResponse{
		AnalysisID:         analysisID,
		Decision:           o.Decision.String(),
		FinalScore:         Round2(o.Scores.FinalScore),
		BusinessScore:      o.Scores.BusinessScore,
		MLScore:            Round2(o.Scores.MLScore),
		DefaultProbability: Round4(o.Scores.DefaultProbability),
		Alerts:             alerts,
		Strengths:          strengths,
		HardRefusal:        o.HardRefusal,
		RefusalReason:      o.RefusalReason,
		Details: FinancialDetails{
			CreditType:           o.Profile.CreditType.String(),
			AnnualRate:           o.Profile.AnnualRate,
			MonthlyPayment:       Round2(o.Profile.MonthlyPayment),
			TotalMonthlyCharge:   Round2(o.Profile.TotalMonthlyObligation),
			DebtRatio:            Round4(o.Profile.DebtRatio),
			DisposableIncome:     Round2(o.Profile.DisposableIncome),
			TotalCost:            Round2(o.Profile.TotalCost),
			TotalInterest:        Round2(o.Profile.TotalInterest),
			MaxBorrowingCapacity: Round2(o.Profile.MaxBorrowingCapacity),
			AgeAtMaturity:        o.Profile.AgeAtMaturity,
		},
	}
}

// FromRecord maps an audit-trail record into the response payload.
func FromRecord(rec model.DecisionRecord) DecisionRecordResponse {
	app := rec.Application
	return DecisionRecordResponse{
		AnalysisResponse: FromOutcome(rec.ID.String(), rec.Outcome),
		Application: AnalyzeRequest{
			AnnualIncome:    app.AnnualIncome,
			Principal:       app.Principal,
			TermYears:       app.TermYears,
			Age:             app.Age,
			EmploymentYears: app.EmploymentYears,
			Children:        app.Children,
			ExistingCharges: app.ExistingCharges,
			DownPayment:     app.DownPayment,
		},
		CreatedAt: rec.CreatedAt,
	}
}

// FromSchedule maps amortization rows into the response payload.
func FromSchedule(principal, annualRate float64, termYears int, rows []model.AmortizationRow) ScheduleResponse {
	out := make([]ScheduleRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ScheduleRow{
			Year:             r.Year,
			PrincipalRepaid:  Round2(r.PrincipalRepaid),
			InterestPaid:     Round2(r.InterestPaid),
			RemainingBalance: Round2(r.RemainingBalance),
		})
	}
	return ScheduleResponse{
		Principal:  principal,
		AnnualRate: annualRate,
		TermYears:  termYears,
		Rows:       out,
	}
}

// Round2 rounds to cents for presentation. Core values stay unrounded.
func Round2(v float64) float64 { return roundPlaces(v, 2) }

// Round4 rounds ratios and probabilities to four places for presentation.
func Round4(v float64) float64 { return roundPlaces(v, 4) }

func roundPlaces(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
