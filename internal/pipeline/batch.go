package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blogsmith/blogsmith/internal/model"
)

// BatchProcessor runs multiple briefs through independent pipelines
// with bounded concurrency. One brief failing never stops the others;
// failures are recorded on the per-brief report.
type BatchProcessor struct {
	// newPipeline builds a fresh pipeline per brief. The brief is passed
	// in because source validation rules (company host, competitors,
	// language) differ per brief.
	newPipeline func(brief *model.Brief) *Pipeline

	concurrency int
	logger      *slog.Logger

	mu      sync.Mutex
	reports []*model.GenerationReport
}

// NewBatchProcessor creates a BatchProcessor. concurrency values below
// one are clamped to one.
func NewBatchProcessor(newPipeline func(brief *model.Brief) *Pipeline, concurrency int, logger *slog.Logger) *BatchProcessor {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchProcessor{
		newPipeline: newPipeline,
		concurrency: concurrency,
		logger:      logger,
	}
}

// ProcessBatch generates an article per brief and returns the reports
// in input order. The returned error is only a context cancellation;
// per-brief failures live in each report's Error field.
func (b *BatchProcessor) ProcessBatch(ctx context.Context, briefs []*model.Brief) ([]*model.GenerationReport, error) {
	reports := make([]*model.GenerationReport, len(briefs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, brief := range briefs {
		i, brief := i, brief
		g.Go(func() error {
			report := model.NewGenerationReport(brief)
			reports[i] = report

			if err := b.newPipeline(brief).Execute(gctx, report); err != nil {
				b.logger.Error("batch item failed",
					"keyword", brief.PrimaryKeyword,
					"error", err)
				return nil
			}

			b.logger.Info("batch item complete",
				"keyword", brief.PrimaryKeyword,
				"duration", report.Duration)
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return reports, ctx.Err()
	}

	b.mu.Lock()
	b.reports = append(b.reports, reports...)
	b.mu.Unlock()

	return reports, nil
}

// Reports returns all reports accumulated across ProcessBatch calls.
func (b *BatchProcessor) Reports() []*model.GenerationReport {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*model.GenerationReport, len(b.reports))
	copy(out, b.reports)
	return out
}
