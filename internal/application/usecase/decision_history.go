package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/domain/port"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// DecisionHistoryUseCase serves the decision audit trail.
type DecisionHistoryUseCase struct {
	decisions port.DecisionRepository
}

// NewDecisionHistoryUseCase creates the use case.
func NewDecisionHistoryUseCase(decisions port.DecisionRepository) *DecisionHistoryUseCase {
	return &DecisionHistoryUseCase{decisions: decisions}
}

// Get retrieves one decision record by its analysis ID.
func (uc *DecisionHistoryUseCase) Get(ctx context.Context, id string) (dto.DecisionRecordResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return dto.DecisionRecordResponse{}, fmt.Errorf("%w: malformed analysis id %q", valueobject.ErrInvalidApplication, id)
	}

	rec, err := uc.decisions.FindByID(ctx, parsed)
	if err != nil {
		return dto.DecisionRecordResponse{}, err
	}
	return dto.FromRecord(rec), nil
}

// ListRecent retrieves the newest decision records. A non-positive limit
// selects the repository default.
func (uc *DecisionHistoryUseCase) ListRecent(ctx context.Context, limit int) ([]dto.DecisionRecordResponse, error) {
	records, err := uc.decisions.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DecisionRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.FromRecord(rec))
	}
	return out, nil
}
