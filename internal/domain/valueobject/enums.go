package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// CreditType – immutable value object
// ---------------------------------------------------------------------------

// CreditType classifies a credit by the size of its principal.
type CreditType struct {
	value string
}

const (
	creditTypeRealEstate = "real_estate"
	creditTypeConsumer   = "consumer"
)

var (
	CreditTypeRealEstate = CreditType{value: creditTypeRealEstate}
	CreditTypeConsumer   = CreditType{value: creditTypeConsumer}
)

// NewCreditType creates a CreditType from a raw string.
func NewCreditType(s string) (CreditType, error) {
	switch s {
	case creditTypeRealEstate:
		return CreditTypeRealEstate, nil
	case creditTypeConsumer:
		return CreditTypeConsumer, nil
	}
	return CreditType{}, fmt.Errorf("invalid credit type: %q", s)
}

// String returns the string representation of the credit type.
func (t CreditType) String() string { return t.value }

// IsZero returns true if the credit type has not been initialised.
func (t CreditType) IsZero() bool { return t.value == "" }

// Equal returns true when both types carry the same value.
func (t CreditType) Equal(other CreditType) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// Decision – immutable value object
// ---------------------------------------------------------------------------

// Decision is the final verdict rendered on a credit application.
type Decision struct {
	value string
}

const (
	decisionAccepted               = "ACCEPTED"
	decisionAcceptedWithConditions = "ACCEPTED_WITH_CONDITIONS"
	decisionRefused                = "REFUSED"
)

var (
	DecisionAccepted               = Decision{value: decisionAccepted}
	DecisionAcceptedWithConditions = Decision{value: decisionAcceptedWithConditions}
	DecisionRefused                = Decision{value: decisionRefused}
)

var validDecisions = map[string]Decision{
	decisionAccepted:               DecisionAccepted,
	decisionAcceptedWithConditions: DecisionAcceptedWithConditions,
	decisionRefused:                DecisionRefused,
}

// NewDecision creates a Decision from a raw string.
func NewDecision(s string) (Decision, error) {
	d, ok := validDecisions[s]
	if !ok {
		return Decision{}, fmt.Errorf("invalid decision: %q", s)
	}
	return d, nil
}

// String returns the string representation of the decision.
func (d Decision) String() string { return d.value }

// IsZero returns true if the decision has not been initialised.
func (d Decision) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions carry the same value.
func (d Decision) Equal(other Decision) bool { return d.value == other.value }

// ---------------------------------------------------------------------------
// Severity – finding severity level
// ---------------------------------------------------------------------------

// Severity grades an alert raised during rule evaluation.
type Severity struct {
	value string
}

var (
	SeverityWarning = Severity{value: "warning"}
	SeverityDanger  = Severity{value: "danger"}
)

// NewSeverity creates a Severity from a raw string.
func NewSeverity(s string) (Severity, error) {
	switch s {
	case "warning":
		return SeverityWarning, nil
	case "danger":
		return SeverityDanger, nil
	}
	return Severity{}, fmt.Errorf("invalid severity: %q", s)
}

// String returns the string representation of the severity.
func (s Severity) String() string { return s.value }
