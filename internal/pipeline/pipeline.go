package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blogsmith/blogsmith/internal/model"
)

// Step is one stage of the generation pipeline.
type Step interface {
	// Do executes the step, reading and extending the report.
	Do(ctx context.Context, report *model.GenerationReport) error

	// Name returns the step identifier recorded in the report.
	Name() string
}

// Pipeline runs steps in sequence against a shared report.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps executing later steps after a failure.
	// The first error is still returned from Execute.
	continueOnError bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps the pipeline running after a step fails.
func WithContinueOnError() PipelineOption {
	return func(p *Pipeline) {
		p.continueOnError = true
	}
}

// New creates a Pipeline over the given steps.
func New(steps []Step, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{steps: steps}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Execute runs every step in order. The report records each completed
// step, the total duration, and the first error. Context cancellation
// stops the run between steps.
func (p *Pipeline) Execute(ctx context.Context, report *model.GenerationReport) error {
	start := time.Now()
	var firstErr error

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			firstErr = err
			break
		}

		p.logger.Debug("running pipeline step", "step", step.Name())
		stepStart := time.Now()

		err := step.Do(ctx, report)
		report.StepsPerformed = append(report.StepsPerformed, step.Name())

		if err != nil {
			p.logger.Error("pipeline step failed",
				"step", step.Name(),
				"duration", time.Since(stepStart),
				"error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("step %s: %w", step.Name(), err)
			}
			if !p.continueOnError {
				break
			}
			continue
		}

		p.logger.Debug("pipeline step complete",
			"step", step.Name(),
			"duration", time.Since(stepStart))
	}

	report.Duration = time.Since(start)
	if firstErr != nil {
		report.Error = firstErr.Error()
	}
	return firstErr
}
