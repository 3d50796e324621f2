package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides a default implementation of DomainEvent. Fields are
// exported so events serialise cleanly with encoding/json.
type BaseEvent struct {
	ID            string    `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     string    `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	Occurred      time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:            uuid.New().String(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Occurred:      time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggregateKind }
func (e BaseEvent) OccurredAt() time.Time { return e.Occurred }

// ---------------------------------------------------------------------------
// Credit decision events
// ---------------------------------------------------------------------------

// CreditDecisionRendered is raised after every completed analysis.
type CreditDecisionRendered struct {
	BaseEvent
	Decision           string  `json:"decision"`
	FinalScore         float64 `json:"final_score"`
	BusinessScore      float64 `json:"business_score"`
	MLScore            float64 `json:"ml_score"`
	DefaultProbability float64 `json:"default_probability"`
	HardRefusal        bool    `json:"hard_refusal"`
	RefusalReason      string  `json:"refusal_reason,omitempty"`
	CreditType         string  `json:"credit_type"`
	Principal          float64 `json:"principal"`
	TermYears          int     `json:"term_years"`
}

// NewCreditDecisionRendered creates the event for a rendered decision.
func NewCreditDecisionRendered(
	analysisID, decision string,
	finalScore, businessScore, mlScore, defaultProbability float64,
	hardRefusal bool, refusalReason string,
	creditType string, principal float64, termYears int,
) CreditDecisionRendered {
	return CreditDecisionRendered{
		BaseEvent:          NewBaseEvent("credit.decision.rendered", analysisID, "CreditDecision"),
		Decision:           decision,
		FinalScore:         finalScore,
		BusinessScore:      businessScore,
		MLScore:            mlScore,
		DefaultProbability: defaultProbability,
		HardRefusal:        hardRefusal,
		RefusalReason:      refusalReason,
		CreditType:         creditType,
		Principal:          principal,
		TermYears:          termYears,
	}
}
