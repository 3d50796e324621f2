package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// ScoringHandler implements ScoringServiceServer on top of the use cases.
type ScoringHandler struct {
	UnimplementedScoringServiceServer

	analyze  *usecase.AnalyzeApplicationUseCase
	payment  *usecase.ComputePaymentUseCase
	capacity *usecase.ComputeCapacityUseCase
	schedule *usecase.AmortizationScheduleUseCase
}

// NewScoringHandler creates the handler with all use-case dependencies.
func NewScoringHandler(
	analyze *usecase.AnalyzeApplicationUseCase,
	payment *usecase.ComputePaymentUseCase,
	capacity *usecase.ComputeCapacityUseCase,
	schedule *usecase.AmortizationScheduleUseCase,
) *ScoringHandler {
	return &ScoringHandler{
		analyze:  analyze,
		payment:  payment,
		capacity: capacity,
		schedule: schedule,
	}
}

// Analyze runs a full credit analysis on one application.
func (h *ScoringHandler) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	resp, err := h.analyze.Execute(ctx, *req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// ComputePayment computes the monthly payment and total cost for a loan.
func (h *ScoringHandler) ComputePayment(_ context.Context, req *PaymentRequest) (*PaymentResponse, error) {
	resp, err := h.payment.Execute(*req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// ComputeCapacity computes the maximum affordable principal for an income.
func (h *ScoringHandler) ComputeCapacity(_ context.Context, req *CapacityRequest) (*CapacityResponse, error) {
	resp, err := h.capacity.Execute(*req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

// GetAmortizationSchedule generates the yearly amortization schedule for a loan.
func (h *ScoringHandler) GetAmortizationSchedule(_ context.Context, req *ScheduleRequest) (*ScheduleResponse, error) {
	resp, err := h.schedule.Execute(*req)
	if err != nil {
		return nil, toStatus(err)
	}
	return &resp, nil
}

func toStatus(err error) error {
	if errors.Is(err, valueobject.ErrInvalidApplication) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
