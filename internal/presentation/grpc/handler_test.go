package grpc_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
	grpcpresentation "github.com/creditscorepro/scoring-service/internal/presentation/grpc"
)

type fixedClassifier struct {
	probability float64
}

func (f fixedClassifier) PredictProba(_ context.Context, _ valueobject.FeatureVector) (float64, error) {
	return f.probability, nil
}

func newTestHandler() *grpcpresentation.ScoringHandler {
	scorer := service.NewRiskScorer(fixedClassifier{probability: 0.1}, nil)
	engine := service.NewDecisionEngine(valueobject.DefaultLendingPolicy(), scorer)
	logger := slog.Default()

	return grpcpresentation.NewScoringHandler(
		usecase.NewAnalyzeApplicationUseCase(engine, nil, nil, logger),
		usecase.NewComputePaymentUseCase(engine.Calculator()),
		usecase.NewComputeCapacityUseCase(engine.Calculator()),
		usecase.NewAmortizationScheduleUseCase(engine.Calculator()),
	)
}

func TestScoringHandler_Analyze(t *testing.T) {
	handler := newTestHandler()

	resp, err := handler.Analyze(context.Background(), &grpcpresentation.AnalyzeRequest{
		AnnualIncome:    50_000,
		Principal:       200_000,
		TermYears:       20,
		Age:             35,
		EmploymentYears: 5,
		Children:        2,
		ExistingCharges: 500,
		DownPayment:     20_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", resp.Decision)
	assert.NotEmpty(t, resp.AnalysisID)
}

func TestScoringHandler_Analyze_InvalidArgument(t *testing.T) {
	handler := newTestHandler()

	_, err := handler.Analyze(context.Background(), &grpcpresentation.AnalyzeRequest{
		AnnualIncome: 50_000,
		Principal:    200_000,
		TermYears:    20,
		Age:          17,
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestScoringHandler_ComputePayment(t *testing.T) {
	handler := newTestHandler()

	resp, err := handler.ComputePayment(context.Background(), &grpcpresentation.PaymentRequest{
		Principal:  200_000,
		AnnualRate: 0.035,
		TermYears:  20,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1159.92, resp.MonthlyPayment, 0.01)
}

func TestScoringHandler_ComputeCapacity(t *testing.T) {
	handler := newTestHandler()

	resp, err := handler.ComputeCapacity(context.Background(), &grpcpresentation.CapacityRequest{
		MonthlyIncome: 4000,
		AnnualRate:    0.035,
		TermYears:     20,
	})
	require.NoError(t, err)
	assert.Greater(t, resp.MaxBorrowingCapacity, 0.0)
}

func TestScoringHandler_GetAmortizationSchedule(t *testing.T) {
	handler := newTestHandler()

	resp, err := handler.GetAmortizationSchedule(context.Background(), &grpcpresentation.ScheduleRequest{
		Principal:  200_000,
		AnnualRate: 0.035,
		TermYears:  20,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 20)
}
