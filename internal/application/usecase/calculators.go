package usecase

import (
	"fmt"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/domain/service"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

func validateLoanTerms(principal, annualRate float64, years int) error {
	switch {
	case principal <= 0:
		return fmt.Errorf("%w: principal must be positive", valueobject.ErrInvalidApplication)
	case annualRate < 0:
		return fmt.Errorf("%w: annual rate must be non-negative", valueobject.ErrInvalidApplication)
	case years < 1:
		return fmt.Errorf("%w: term must be at least one year", valueobject.ErrInvalidApplication)
	}
	return nil
}

// ComputePaymentUseCase backs the standalone payment calculator.
type ComputePaymentUseCase struct {
	calc service.Calculator
}

// NewComputePaymentUseCase creates the use case.
func NewComputePaymentUseCase(calc service.Calculator) *ComputePaymentUseCase {
	return &ComputePaymentUseCase{calc: calc}
}

// Execute computes the monthly payment and total cost for a loan.
func (uc *ComputePaymentUseCase) Execute(req dto.PaymentRequest) (dto.PaymentResponse, error) {
	if err := validateLoanTerms(req.Principal, req.AnnualRate, req.TermYears); err != nil {
		return dto.PaymentResponse{}, err
	}

	payment := uc.calc.MonthlyPayment(req.Principal, req.AnnualRate, req.TermYears)
	total, interest := uc.calc.TotalCost(req.Principal, req.AnnualRate, req.TermYears)

	return dto.PaymentResponse{
		MonthlyPayment: dto.Round2(payment),
		TotalCost:      dto.Round2(total),
		TotalInterest:  dto.Round2(interest),
		Principal:      req.Principal,
		AnnualRate:     req.AnnualRate,
		TermYears:      req.TermYears,
	}, nil
}

// ComputeCapacityUseCase backs the borrowing-capacity calculator.
type ComputeCapacityUseCase struct {
	calc service.Calculator
}

// NewComputeCapacityUseCase creates the use case.
func NewComputeCapacityUseCase(calc service.Calculator) *ComputeCapacityUseCase {
	return &ComputeCapacityUseCase{calc: calc}
}

// Execute computes the maximum affordable principal for an income.
func (uc *ComputeCapacityUseCase) Execute(req dto.CapacityRequest) (dto.CapacityResponse, error) {
	switch {
	case req.MonthlyIncome <= 0:
		return dto.CapacityResponse{}, fmt.Errorf("%w: monthly income must be positive", valueobject.ErrInvalidApplication)
	case req.AnnualRate < 0:
		return dto.CapacityResponse{}, fmt.Errorf("%w: annual rate must be non-negative", valueobject.ErrInvalidApplication)
	case req.TermYears < 1:
		return dto.CapacityResponse{}, fmt.Errorf("%w: term must be at least one year", valueobject.ErrInvalidApplication)
	case req.ExistingCharges < 0:
		return dto.CapacityResponse{}, fmt.Errorf("%w: existing charges must be non-negative", valueobject.ErrInvalidApplication)
	}

	capacity := uc.calc.MaxBorrowingCapacity(req.MonthlyIncome, req.AnnualRate, req.TermYears, req.ExistingCharges)

	return dto.CapacityResponse{
		MaxBorrowingCapacity: dto.Round2(capacity),
		MonthlyIncome:        req.MonthlyIncome,
		AnnualRate:           req.AnnualRate,
		TermYears:            req.TermYears,
		ExistingCharges:      req.ExistingCharges,
	}, nil
}

// AmortizationScheduleUseCase backs the schedule calculator.
type AmortizationScheduleUseCase struct {
	calc service.Calculator
}

// NewAmortizationScheduleUseCase creates the use case.
func NewAmortizationScheduleUseCase(calc service.Calculator) *AmortizationScheduleUseCase {
	return &AmortizationScheduleUseCase{calc: calc}
}

// Execute generates the yearly amortization schedule for a loan.
func (uc *AmortizationScheduleUseCase) Execute(req dto.ScheduleRequest) (dto.ScheduleResponse, error) {
	if err := validateLoanTerms(req.Principal, req.AnnualRate, req.TermYears); err != nil {
		return dto.ScheduleResponse{}, err
	}

	rows := uc.calc.AmortizationSchedule(req.Principal, req.AnnualRate, req.TermYears)
	return dto.FromSchedule(req.Principal, req.AnnualRate, req.TermYears, rows), nil
}
