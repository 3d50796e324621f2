package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/domain/event"
	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/port"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
)

// AnalyzeApplicationUseCase orchestrates a full credit analysis: validation,
// decisioning, audit-trail persistence, and event publication.
type AnalyzeApplicationUseCase struct {
	engine    *service.DecisionEngine
	decisions port.DecisionRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewAnalyzeApplicationUseCase wires dependencies. The repository and the
// publisher may be nil; the analysis then runs without an audit trail.
func NewAnalyzeApplicationUseCase(
	engine *service.DecisionEngine,
	decisions port.DecisionRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *AnalyzeApplicationUseCase {
	return &AnalyzeApplicationUseCase{
		engine:    engine,
		decisions: decisions,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute validates and analyses one application. Audit persistence and
// event publication are best-effort: a rendered decision is always returned
// even when the surrounding infrastructure is down.
func (uc *AnalyzeApplicationUseCase) Execute(ctx context.Context, req dto.AnalyzeRequest) (dto.AnalysisResponse, error) {
	app := req.ToApplication()
	if err := app.Validate(uc.engine.Policy()); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("validate application: %w", err)
	}

	outcome := uc.engine.Analyze(ctx, app)
	analysisID := uuid.New()

	uc.logger.InfoContext(ctx, "credit decision rendered",
		"analysis_id", analysisID,
		"decision", outcome.Decision.String(),
		"final_score", outcome.Scores.FinalScore,
		"hard_refusal", outcome.HardRefusal,
	)

	if uc.decisions != nil {
		record := model.DecisionRecord{
			ID:          analysisID,
			Application: app,
			Outcome:     outcome,
			CreatedAt:   time.Now().UTC(),
		}
		if err := uc.decisions.Save(ctx, record); err != nil {
			uc.logger.WarnContext(ctx, "failed to persist decision record",
				"analysis_id", analysisID, "error", err)
		}
	}

	if uc.publisher != nil {
		evt := event.NewCreditDecisionRendered(
			analysisID.String(),
			outcome.Decision.String(),
			outcome.Scores.FinalScore,
			outcome.Scores.BusinessScore,
			outcome.Scores.MLScore,
			outcome.Scores.DefaultProbability,
			outcome.HardRefusal,
			outcome.RefusalReason,
			outcome.Profile.CreditType.String(),
			app.Principal,
			app.TermYears,
		)
		if err := uc.publisher.Publish(ctx, evt); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish decision event",
				"analysis_id", analysisID, "error", err)
		}
	}

	return dto.FromOutcome(analysisID.String(), outcome), nil
}
