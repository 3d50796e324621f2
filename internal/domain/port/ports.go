package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/creditscorepro/scoring-service/internal/domain/event"
	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// External service ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// Classifier predicts the probability of the positive (default) class for a
// single-row feature vector. Implementations must be safe for concurrent
// read-only inference.
type Classifier interface {
	PredictProba(ctx context.Context, features valueobject.FeatureVector) (float64, error)
}

// ---------------------------------------------------------------------------
// Repository ports
// ---------------------------------------------------------------------------

// DecisionRepository persists and retrieves the decision audit trail.
type DecisionRepository interface {
	Save(ctx context.Context, record model.DecisionRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (model.DecisionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]model.DecisionRecord, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
