package entity

// OperationResult is the final state of a processed ProfileRequest.
type OperationResult string

const (
	ResultCreated OperationResult = "Created"
	ResultTagged  OperationResult = "Tagged"
	ResultSkipped OperationResult = "Skipped"
	ResultFailed  OperationResult = "Failed"
)

// Succeeded reports whether the result produces an audit record.
func (r OperationResult) Succeeded() bool {
	return r == ResultCreated || r == ResultTagged
}

// OperationOutcome is emitted exactly once per processed ProfileRequest.
type OperationOutcome struct {
	Request     ProfileRequest  `json:"request"`
	Result      OperationResult `json:"result"`
	ProfileName string          `json:"profile_name"`
	Arn         string          `json:"arn,omitempty"`
	Err         error           `json:"-"`
}

// Name returns the resolved remote name, falling back to the requested one.
func (o OperationOutcome) Name() string {
	if o.ProfileName != "" {
		return o.ProfileName
	}
	return o.Request.Label()
}

// ErrorDetail returns the failure message, or "" for successful outcomes.
func (o OperationOutcome) ErrorDetail() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// BatchSummary aggregates the outcomes of a batch run.
type BatchSummary struct {
	Outcomes []OperationOutcome `json:"outcomes"`
	Created  int                `json:"created"`
	Tagged   int                `json:"tagged"`
	Skipped  int                `json:"skipped"`
	Failed   int                `json:"failed"`
}

// Add records an outcome and updates the counters.
func (s *BatchSummary) Add(o OperationOutcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Result {
	case ResultCreated:
		s.Created++
	case ResultTagged:
		s.Tagged++
	case ResultSkipped:
		s.Skipped++
	case ResultFailed:
		s.Failed++
	}
}

// Succeeded returns the number of outcomes that produced an audit record.
func (s BatchSummary) Succeeded() int {
	return s.Created + s.Tagged
}
