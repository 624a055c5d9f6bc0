package quality

import "strings"

// GateError is returned when fatal findings remain after the repair
// pass. It carries the individual error messages so callers can report
// them one per line.
type GateError struct {
	// Errors are the fatal finding messages that survived the fixes.
	Errors []string
}

// Error formats the gate failure with one indented line per finding.
func (e *GateError) Error() string {
	var sb strings.Builder
	sb.WriteString("quality check failed after automatic fixes:")
	for _, msg := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(msg)
	}
	return sb.String()
}
