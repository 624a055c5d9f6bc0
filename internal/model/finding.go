package model

// Severity classifies a quality finding.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityWarning indicates an advisory finding. Warnings are logged
	// and recorded but never block article delivery.
	SeverityWarning Severity = iota

	// SeverityError indicates a fatal finding. Errors that remain after
	// the repair pass block delivery.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Finding is a single quality check result.
type Finding struct {
	// Check is the name of the check that produced this finding.
	Check string `json:"check"`

	// Severity is the finding classification.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity for serialized output.
	SeverityText string `json:"severity_text"`

	// Message describes the violation, including the offending values.
	Message string `json:"message"`
}

// ValidationResult collects the outcome of one quality validation run.
// It is created per run by the checker, consumed by the fix step, and then
// discarded; the checker itself holds no cross-call state.
type ValidationResult struct {
	// Findings are all errors and warnings in the order they were produced.
	Findings []Finding `json:"findings,omitempty"`

	// OrphanedCitations are citation numbers found in the body with no
	// matching source index, pending removal by the fix step.
	OrphanedCitations map[int]struct{} `json:"-"`
}

// NewValidationResult returns an empty result ready for accumulation.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Findings:          make([]Finding, 0),
		OrphanedCitations: make(map[int]struct{}),
	}
}

// AddError records a fatal finding for the named check.
func (r *ValidationResult) AddError(check, message string) {
	r.Findings = append(r.Findings, Finding{
		Check:        check,
		Severity:     SeverityError,
		SeverityText: SeverityError.String(),
		Message:      message,
	})
}

// AddWarning records an advisory finding for the named check.
func (r *ValidationResult) AddWarning(check, message string) {
	r.Findings = append(r.Findings, Finding{
		Check:        check,
		Severity:     SeverityWarning,
		SeverityText: SeverityWarning.String(),
		Message:      message,
	})
}

// MarkOrphan records a citation number for removal by the fix step.
func (r *ValidationResult) MarkOrphan(n int) {
	if r.OrphanedCitations == nil {
		r.OrphanedCitations = make(map[int]struct{})
	}
	r.OrphanedCitations[n] = struct{}{}
}

// Errors returns the messages of all fatal findings in order.
func (r *ValidationResult) Errors() []string {
	msgs := make([]string, 0)
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// Warnings returns the messages of all advisory findings in order.
func (r *ValidationResult) Warnings() []string {
	msgs := make([]string, 0)
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

// IsValid reports whether the run produced no fatal findings.
func (r *ValidationResult) IsValid() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return false
		}
	}
	return true
}
