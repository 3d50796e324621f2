package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/event"
	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockClassifier struct {
	probability float64
	err         error
}

func (m mockClassifier) PredictProba(_ context.Context, _ valueobject.FeatureVector) (float64, error) {
	return m.probability, m.err
}

type mockDecisionRepository struct {
	saveFunc     func(ctx context.Context, record model.DecisionRecord) error
	savedRecords []model.DecisionRecord
}

func (m *mockDecisionRepository) Save(ctx context.Context, record model.DecisionRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, record)
	}
	m.savedRecords = append(m.savedRecords, record)
	return nil
}

func (m *mockDecisionRepository) FindByID(_ context.Context, _ uuid.UUID) (model.DecisionRecord, error) {
	return model.DecisionRecord{}, errors.New("record not found")
}

func (m *mockDecisionRepository) ListRecent(_ context.Context, _ int) ([]model.DecisionRecord, error) {
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Helpers ---

func newTestEngine(classifier mockClassifier) *service.DecisionEngine {
	scorer := service.NewRiskScorer(classifier, nil)
	return service.NewDecisionEngine(valueobject.DefaultLendingPolicy(), scorer)
}

func solidRequest() dto.AnalyzeRequest {
	return dto.AnalyzeRequest{
		AnnualIncome:    50_000,
		Principal:       200_000,
		TermYears:       20,
		Age:             35,
		EmploymentYears: 5,
		Children:        2,
		ExistingCharges: 500,
		DownPayment:     20_000,
	}
}

// --- Tests ---

func TestAnalyzeApplication_Success(t *testing.T) {
	repo := &mockDecisionRepository{}
	publisher := &mockEventPublisher{}
	uc := usecase.NewAnalyzeApplicationUseCase(newTestEngine(mockClassifier{probability: 0.1}), repo, publisher, slog.Default())

	resp, err := uc.Execute(context.Background(), solidRequest())
	require.NoError(t, err)

	assert.Equal(t, "ACCEPTED", resp.Decision)
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, "real_estate", resp.Details.CreditType)
	assert.InDelta(t, 1159.92, resp.Details.MonthlyPayment, 0.01)

	// One audit record and one event per analysis.
	require.Len(t, repo.savedRecords, 1)
	assert.Equal(t, resp.AnalysisID, repo.savedRecords[0].ID.String())
	require.Len(t, publisher.publishedEvents, 1)
	evt, ok := publisher.publishedEvents[0].(event.CreditDecisionRendered)
	require.True(t, ok)
	assert.Equal(t, "credit.decision.rendered", evt.EventType())
	assert.Equal(t, resp.AnalysisID, evt.AggregateID())
	assert.Equal(t, "ACCEPTED", evt.Decision)
}

func TestAnalyzeApplication_InvalidApplication(t *testing.T) {
	repo := &mockDecisionRepository{}
	uc := usecase.NewAnalyzeApplicationUseCase(newTestEngine(mockClassifier{}), repo, &mockEventPublisher{}, slog.Default())

	req := solidRequest()
	req.TermYears = 40

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, valueobject.ErrInvalidApplication)
	assert.Empty(t, repo.savedRecords)
}

func TestAnalyzeApplication_RepositoryFailureDoesNotBlockDecision(t *testing.T) {
	repo := &mockDecisionRepository{
		saveFunc: func(context.Context, model.DecisionRecord) error {
			return errors.New("database down")
		},
	}
	uc := usecase.NewAnalyzeApplicationUseCase(newTestEngine(mockClassifier{probability: 0.1}), repo, &mockEventPublisher{}, slog.Default())

	resp, err := uc.Execute(context.Background(), solidRequest())
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Decision)
}

func TestAnalyzeApplication_PublisherFailureDoesNotBlockDecision(t *testing.T) {
	publisher := &mockEventPublisher{
		publishFunc: func(context.Context, ...event.DomainEvent) error {
			return errors.New("broker unreachable")
		},
	}
	uc := usecase.NewAnalyzeApplicationUseCase(newTestEngine(mockClassifier{probability: 0.1}), &mockDecisionRepository{}, publisher, slog.Default())

	resp, err := uc.Execute(context.Background(), solidRequest())
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Decision)
}

func TestAnalyzeApplication_WithoutAuditInfrastructure(t *testing.T) {
	uc := usecase.NewAnalyzeApplicationUseCase(newTestEngine(mockClassifier{probability: 0.1}), nil, nil, slog.Default())

	resp, err := uc.Execute(context.Background(), solidRequest())
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Decision)
}

func TestAnalyzeApplication_ClassifierFailureYieldsNeutralMLScore(t *testing.T) {
	uc := usecase.NewAnalyzeApplicationUseCase(newTestEngine(mockClassifier{err: errors.New("inference failed")}), nil, nil, slog.Default())

	resp, err := uc.Execute(context.Background(), solidRequest())
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.MLScore)
	assert.Equal(t, 0.5, resp.DefaultProbability)
}
