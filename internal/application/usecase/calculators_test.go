package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

func newTestCalculator() service.Calculator {
	return service.NewCalculator(valueobject.DefaultLendingPolicy())
}

func TestComputePayment(t *testing.T) {
	uc := usecase.NewComputePaymentUseCase(newTestCalculator())

	resp, err := uc.Execute(dto.PaymentRequest{Principal: 200_000, AnnualRate: 0.035, TermYears: 20})
	require.NoError(t, err)

	assert.InDelta(t, 1159.92, resp.MonthlyPayment, 0.01)
	assert.InDelta(t, resp.MonthlyPayment*240, resp.TotalCost, 1.0)
	assert.InDelta(t, resp.TotalCost-200_000, resp.TotalInterest, 1.0)
}

func TestComputePayment_Invalid(t *testing.T) {
	uc := usecase.NewComputePaymentUseCase(newTestCalculator())

	for _, req := range []dto.PaymentRequest{
		{Principal: 0, AnnualRate: 0.035, TermYears: 20},
		{Principal: 100_000, AnnualRate: -0.01, TermYears: 20},
		{Principal: 100_000, AnnualRate: 0.035, TermYears: 0},
	} {
		_, err := uc.Execute(req)
		assert.ErrorIs(t, err, valueobject.ErrInvalidApplication)
	}
}

func TestComputeCapacity(t *testing.T) {
	uc := usecase.NewComputeCapacityUseCase(newTestCalculator())

	resp, err := uc.Execute(dto.CapacityRequest{MonthlyIncome: 4000, AnnualRate: 0.035, TermYears: 20})
	require.NoError(t, err)
	assert.Greater(t, resp.MaxBorrowingCapacity, 0.0)

	// Existing charges shrink the affordable principal.
	reduced, err := uc.Execute(dto.CapacityRequest{MonthlyIncome: 4000, AnnualRate: 0.035, TermYears: 20, ExistingCharges: 600})
	require.NoError(t, err)
	assert.Less(t, reduced.MaxBorrowingCapacity, resp.MaxBorrowingCapacity)
}

func TestComputeCapacity_Invalid(t *testing.T) {
	uc := usecase.NewComputeCapacityUseCase(newTestCalculator())

	_, err := uc.Execute(dto.CapacityRequest{MonthlyIncome: 0, AnnualRate: 0.035, TermYears: 20})
	assert.ErrorIs(t, err, valueobject.ErrInvalidApplication)

	_, err = uc.Execute(dto.CapacityRequest{MonthlyIncome: 4000, AnnualRate: 0.035, TermYears: 20, ExistingCharges: -1})
	assert.ErrorIs(t, err, valueobject.ErrInvalidApplication)
}

func TestAmortizationSchedule(t *testing.T) {
	uc := usecase.NewAmortizationScheduleUseCase(newTestCalculator())

	resp, err := uc.Execute(dto.ScheduleRequest{Principal: 200_000, AnnualRate: 0.035, TermYears: 20})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 20)

	assert.Equal(t, 1, resp.Rows[0].Year)
	assert.InDelta(t, 0.0, resp.Rows[19].RemainingBalance, 0.01)
}

func TestAmortizationSchedule_Invalid(t *testing.T) {
	uc := usecase.NewAmortizationScheduleUseCase(newTestCalculator())

	_, err := uc.Execute(dto.ScheduleRequest{Principal: -5, AnnualRate: 0.035, TermYears: 20})
	assert.ErrorIs(t, err, valueobject.ErrInvalidApplication)
}
