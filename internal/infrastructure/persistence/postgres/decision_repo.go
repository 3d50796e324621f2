package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// DecisionRepo implements port.DecisionRepository on PostgreSQL.
type DecisionRepo struct {
	pool *pgxpool.Pool
}

// NewDecisionRepo creates a new repository backed by PostgreSQL.
func NewDecisionRepo(pool *pgxpool.Pool) *DecisionRepo {
	return &DecisionRepo{pool: pool}
}

// storedFinding is the JSONB form of one alert.
type storedFinding struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Save inserts a decision record. Records are append-only.
func (r *DecisionRepo) Save(ctx context.Context, rec model.DecisionRecord) error {
	alerts := make([]storedFinding, 0, len(rec.Outcome.Alerts))
	for _, a := range rec.Outcome.Alerts {
		alerts = append(alerts, storedFinding{Severity: a.Severity.String(), Message: a.Message})
	}
	alertsJSON, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}
	strengthsJSON, err := json.Marshal(rec.Outcome.Strengths)
	if err != nil {
		return fmt.Errorf("marshal strengths: %w", err)
	}

	query := `
		INSERT INTO credit_decisions (
			id, annual_income, principal, term_years, age, employment_years,
			children, existing_charges, down_payment,
			decision, final_score, business_score, ml_score, default_probability,
			hard_refusal, refusal_reason,
			credit_type, annual_rate, monthly_payment, total_monthly_charge,
			debt_ratio, disposable_income, total_cost, total_interest,
			max_borrowing_capacity, age_at_maturity,
			alerts, strengths, created_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,
			$10,$11,$12,$13,$14,$15,$16,
			$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,
			$27,$28,$29
		)
	`
	app, out := rec.Application, rec.Outcome
	_, err = r.pool.Exec(ctx, query,
		rec.ID, app.AnnualIncome, app.Principal, app.TermYears, app.Age, app.EmploymentYears,
		app.Children, app.ExistingCharges, app.DownPayment,
		out.Decision.String(), out.Scores.FinalScore, out.Scores.BusinessScore,
		out.Scores.MLScore, out.Scores.DefaultProbability,
		out.HardRefusal, out.RefusalReason,
		out.Profile.CreditType.String(), out.Profile.AnnualRate, out.Profile.MonthlyPayment,
		out.Profile.TotalMonthlyObligation, out.Profile.DebtRatio, out.Profile.DisposableIncome,
		out.Profile.TotalCost, out.Profile.TotalInterest,
		out.Profile.MaxBorrowingCapacity, out.Profile.AgeAtMaturity,
		alertsJSON, strengthsJSON, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save credit decision: %w", err)
	}
	return nil
}

const selectColumns = `
	id, annual_income, principal, term_years, age, employment_years,
	children, existing_charges, down_payment,
	decision, final_score, business_score, ml_score, default_probability,
	hard_refusal, refusal_reason,
	credit_type, annual_rate, monthly_payment, total_monthly_charge,
	debt_ratio, disposable_income, total_cost, total_interest,
	max_borrowing_capacity, age_at_maturity,
	alerts, strengths, created_at
`

// FindByID retrieves a single decision record.
func (r *DecisionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.DecisionRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM credit_decisions WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	rec, err := scanDecision(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DecisionRecord{}, model.ErrDecisionNotFound
	}
	return rec, err
}

// ListRecent retrieves the most recent decision records, newest first.
func (r *DecisionRepo) ListRecent(ctx context.Context, limit int) ([]model.DecisionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + selectColumns + ` FROM credit_decisions ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query credit decisions: %w", err)
	}
	defer rows.Close()

	var result []model.DecisionRecord
	for rows.Next() {
		rec, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanDecision(s scannable) (model.DecisionRecord, error) {
	var (
		id                         uuid.UUID
		app                        valueobject.CreditApplication
		decisionStr, refusalReason string
		creditTypeStr              string
		scores                     model.ScoreBundle
		hardRefusal                bool
		profile                    model.FinancialProfile
		alertsJSON, strengthsJSON  []byte
		createdAt                  time.Time
	)

	err := s.Scan(
		&id, &app.AnnualIncome, &app.Principal, &app.TermYears, &app.Age, &app.EmploymentYears,
		&app.Children, &app.ExistingCharges, &app.DownPayment,
		&decisionStr, &scores.FinalScore, &scores.BusinessScore,
		&scores.MLScore, &scores.DefaultProbability,
		&hardRefusal, &refusalReason,
		&creditTypeStr, &profile.AnnualRate, &profile.MonthlyPayment,
		&profile.TotalMonthlyObligation, &profile.DebtRatio, &profile.DisposableIncome,
		&profile.TotalCost, &profile.TotalInterest,
		&profile.MaxBorrowingCapacity, &profile.AgeAtMaturity,
		&alertsJSON, &strengthsJSON, &createdAt,
	)
	if err != nil {
		return model.DecisionRecord{}, fmt.Errorf("scan credit decision: %w", err)
	}

	decision, err := valueobject.NewDecision(decisionStr)
	if err != nil {
		return model.DecisionRecord{}, fmt.Errorf("parse decision: %w", err)
	}
	creditType, err := valueobject.NewCreditType(creditTypeStr)
	if err != nil {
		return model.DecisionRecord{}, fmt.Errorf("parse credit type: %w", err)
	}
	profile.CreditType = creditType

	var stored []storedFinding
	if err := json.Unmarshal(alertsJSON, &stored); err != nil {
		return model.DecisionRecord{}, fmt.Errorf("unmarshal alerts: %w", err)
	}
	alerts := make([]model.Finding, 0, len(stored))
	for _, f := range stored {
		sev, err := valueobject.NewSeverity(f.Severity)
		if err != nil {
			return model.DecisionRecord{}, fmt.Errorf("parse severity: %w", err)
		}
		alerts = append(alerts, model.Finding{Severity: sev, Message: f.Message})
	}

	var strengths []string
	if err := json.Unmarshal(strengthsJSON, &strengths); err != nil {
		return model.DecisionRecord{}, fmt.Errorf("unmarshal strengths: %w", err)
	}

	return model.DecisionRecord{
		ID:          id,
		Application: app,
		Outcome: model.DecisionOutcome{
			Decision:      decision,
			Scores:        scores,
			Alerts:        alerts,
			Strengths:     strengths,
			HardRefusal:   hardRefusal,
			RefusalReason: refusalReason,
			Profile:       profile,
		},
		CreatedAt: createdAt,
	}, nil
}
