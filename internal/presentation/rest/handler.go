package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/creditscorepro/scoring-service/internal/application/dto"
	"github.com/creditscorepro/scoring-service/internal/application/usecase"
	"github.com/creditscorepro/scoring-service/internal/domain/model"
	"github.com/creditscorepro/scoring-service/internal/domain/valueobject"
)

// CreditHandler exposes the scoring and calculator operations over HTTP.
type CreditHandler struct {
	analyze  *usecase.AnalyzeApplicationUseCase
	payment  *usecase.ComputePaymentUseCase
	capacity *usecase.ComputeCapacityUseCase
	schedule *usecase.AmortizationScheduleUseCase
	history  *usecase.DecisionHistoryUseCase
	logger   *slog.Logger
}

// NewCreditHandler creates the handler with all use-case dependencies.
// The history use case may be nil when the audit trail is disabled; the
// decision routes are then not registered.
func NewCreditHandler(
	analyze *usecase.AnalyzeApplicationUseCase,
	payment *usecase.ComputePaymentUseCase,
	capacity *usecase.ComputeCapacityUseCase,
	schedule *usecase.AmortizationScheduleUseCase,
	history *usecase.DecisionHistoryUseCase,
	logger *slog.Logger,
) *CreditHandler {
	return &CreditHandler{
		analyze:  analyze,
		payment:  payment,
		capacity: capacity,
		schedule: schedule,
		history:  history,
		logger:   logger,
	}
}

// RegisterRoutes attaches the scoring routes to the given mux.
func (h *CreditHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/analyze", h.handleAnalyze)
	mux.HandleFunc("GET /v1/calculators/payment", h.handlePayment)
	mux.HandleFunc("GET /v1/calculators/capacity", h.handleCapacity)
	mux.HandleFunc("GET /v1/calculators/amortization", h.handleSchedule)

	if h.history != nil {
		mux.HandleFunc("GET /v1/decisions", h.handleListDecisions)
		mux.HandleFunc("GET /v1/decisions/{id}", h.handleGetDecision)
	}
}

func (h *CreditHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	resp, err := h.analyze.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handlePayment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.PaymentRequest{
		Principal:  queryFloat(q.Get("principal")),
		AnnualRate: queryFloat(q.Get("annual_rate")),
		TermYears:  queryInt(q.Get("years")),
	}

	resp, err := h.payment.Execute(req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleCapacity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.CapacityRequest{
		MonthlyIncome:   queryFloat(q.Get("monthly_income")),
		AnnualRate:      queryFloat(q.Get("annual_rate")),
		TermYears:       queryInt(q.Get("years")),
		ExistingCharges: queryFloat(q.Get("charges")),
	}

	resp, err := h.capacity.Execute(req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.ScheduleRequest{
		Principal:  queryFloat(q.Get("principal")),
		AnnualRate: queryFloat(q.Get("annual_rate")),
		TermYears:  queryInt(q.Get("years")),
	}

	resp, err := h.schedule.Execute(req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	resp, err := h.history.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r.URL.Query().Get("limit"))

	resp, err := h.history.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	if resp == nil {
		resp = []dto.DecisionRecordResponse{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CreditHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, valueobject.ErrInvalidApplication):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrDecisionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// queryFloat parses a numeric query parameter. Absent or malformed values
// become zero and fail the use-case validation with a client error.
func queryFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
