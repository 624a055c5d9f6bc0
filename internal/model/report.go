package model

import "time"

// GenerationReport is the accumulated state of one article generation run.
// Pipeline steps receive it in sequence and each step fills in its part.
//
// Design decision: We use a single struct threaded through the pipeline
// rather than step-to-step return values because:
//  1. Steps stay uniform (same signature) and easy to reorder in tests
//  2. Partial state survives a failed step for diagnostics
//  3. Report writers can serialize the whole run in one place
type GenerationReport struct {
	// Brief is the input contract this run was generated from.
	Brief *Brief `json:"brief"`

	// GeneratedAt is when the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// RawResponse is the unmodified model output text.
	// May or may not contain a well-formed JSON object.
	RawResponse string `json:"-"`

	// Payload is the JSON object extracted from RawResponse.
	// Empty when no JSON object could be found.
	Payload map[string]any `json:"-"`

	// RawWordCount is the generation-time word estimate summed over all
	// string fields of the payload, HTML tags included.
	RawWordCount int `json:"raw_word_count,omitempty"`

	// Article is the parsed, validated, and repaired article.
	Article *Article `json:"article,omitempty"`

	// PreFix holds the findings of the validation pass before repairs.
	PreFix *ValidationResult `json:"pre_fix,omitempty"`

	// PostFix holds the findings of the validation pass after repairs.
	// The run fails only if this pass still contains errors.
	PostFix *ValidationResult `json:"post_fix,omitempty"`

	// StepsPerformed lists pipeline step names in execution order.
	StepsPerformed []string `json:"steps_performed,omitempty"`

	// Duration is the total wall-clock time of the run.
	Duration time.Duration `json:"duration_ns,omitempty"`

	// Error holds the failure message if the run did not complete.
	Error string `json:"error,omitempty"`
}

// NewGenerationReport creates a report for the given brief.
func NewGenerationReport(brief *Brief) *GenerationReport {
	return &GenerationReport{
		Brief:       brief,
		GeneratedAt: time.Now(),
	}
}

// AllWarnings returns the warning messages of both validation passes,
// pre-fix first. Warnings never block; they are surfaced for logging.
func (r *GenerationReport) AllWarnings() []string {
	warnings := make([]string, 0)
	if r.PreFix != nil {
		warnings = append(warnings, r.PreFix.Warnings()...)
	}
	if r.PostFix != nil {
		warnings = append(warnings, r.PostFix.Warnings()...)
	}
	return warnings
}

// Succeeded reports whether the run completed with no remaining errors.
func (r *GenerationReport) Succeeded() bool {
	return r.Error == "" && (r.PostFix == nil || r.PostFix.IsValid())
}
