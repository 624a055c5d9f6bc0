package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blogsmith/blogsmith/internal/llm"
	"github.com/blogsmith/blogsmith/internal/model"
	"github.com/blogsmith/blogsmith/internal/parser"
	"github.com/blogsmith/blogsmith/internal/quality"
	"github.com/blogsmith/blogsmith/internal/render"
	"github.com/blogsmith/blogsmith/internal/sources"
)

// generationTemperature keeps output factual while leaving room for
// varied phrasing across sections.
const generationTemperature = 0.3

// generationMaxTokens accommodates the full JSON payload of a long
// article plus source and query lists.
const generationMaxTokens = 65536

// ErrEmptyPayload is returned when the model output contains no
// parseable JSON object.
var ErrEmptyPayload = errors.New("model output contains no parseable JSON object")

// Generator is the slice of the LLM client the generate step needs.
type Generator interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// GenerateStep calls the model with the assembled prompt and stores the
// raw response on the report.
type GenerateStep struct {
	Generator Generator
	Model     string
	Logger    *slog.Logger
}

// Name returns the step identifier.
func (s *GenerateStep) Name() string { return "generate" }

// Do builds the prompt from the brief and runs the completion.
func (s *GenerateStep) Do(ctx context.Context, report *model.GenerationReport) error {
	temperature := generationTemperature
	resp, err := s.Generator.Complete(ctx, llm.Request{
		Model: s.Model,
		Messages: []llm.Message{
			{Role: "user", Content: BuildPrompt(report.Brief)},
		},
		Temperature: &temperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return fmt.Errorf("content generation failed: %w", err)
	}

	if s.Logger != nil {
		s.Logger.Info("content generated",
			"model", resp.Model,
			"prompt_tokens", resp.Usage.PromptTokens,
			"completion_tokens", resp.Usage.CompletionTokens)
	}

	report.RawResponse = resp.Content
	return nil
}

// ParseStep extracts the JSON payload from the raw response and builds
// the article skeleton.
type ParseStep struct{}

// Name returns the step identifier.
func (s *ParseStep) Name() string { return "parse" }

// Do decodes the payload, assembles the article, and normalizes its
// HTML so the quality checks see what would actually ship. An output
// with no JSON object at all is fatal; there is nothing to repair.
func (s *ParseStep) Do(_ context.Context, report *model.GenerationReport) error {
	payload := parser.ExtractPayload(report.RawResponse)
	if len(payload) == 0 {
		return ErrEmptyPayload
	}

	report.Payload = payload
	report.RawWordCount = parser.RawWordCount(payload)

	a := parser.Build(payload)
	a.Intro = render.CleanHTML(a.Intro)
	for i := range a.Sections {
		a.Sections[i].Content = render.CleanHTML(a.Sections[i].Content)
	}
	a.Teaser = render.SanitizeCitations(a.Teaser)

	report.Article = a
	return nil
}

// SourceExtractor is the slice of the sources package this step needs.
type SourceExtractor interface {
	Extract(ctx context.Context, parsed []model.Source, keyword string) ([]model.Source, error)
}

// SourcesStep validates the source list and attaches the survivors to
// the article.
type SourcesStep struct {
	Extractor SourceExtractor
}

// Name returns the step identifier.
func (s *SourcesStep) Name() string { return "sources" }

// Do parses the raw source list, runs validation and replacement, and
// deduplicates the survivors.
func (s *SourcesStep) Do(ctx context.Context, report *model.GenerationReport) error {
	parsed := parser.ParseSourceLines(parser.SourcesText(report.Payload))
	validated, err := s.Extractor.Extract(ctx, parsed, report.Brief.PrimaryKeyword)
	if err != nil {
		return fmt.Errorf("source validation failed: %w", err)
	}
	report.Article.Sources = sources.Dedupe(validated)
	return nil
}

// QualityStep runs the validate, fix, re-validate sequence and gates
// delivery on the second pass.
type QualityStep struct {
	Checker *quality.Checker
	Logger  *slog.Logger
}

// Name returns the step identifier.
func (s *QualityStep) Name() string { return "quality" }

// Do validates twice with the repair pass in between. Fixes are applied
// even when the first pass is clean; truncation and orphan removal are
// no-ops on a clean article. Warnings from both passes are logged and
// never block.
func (s *QualityStep) Do(_ context.Context, report *model.GenerationReport) error {
	report.PreFix = s.Checker.Validate(report.Article, report.Brief)
	quality.ApplyFixes(report.Article, report.PreFix)
	report.PostFix = s.Checker.Validate(report.Article, report.Brief)

	if s.Logger != nil {
		for _, warning := range report.AllWarnings() {
			s.Logger.Warn("quality warning", "message", warning)
		}
	}

	if errs := report.PostFix.Errors(); len(errs) > 0 {
		return &quality.GateError{Errors: errs}
	}
	return nil
}

// RenderStep produces the derived delivery fields: read time, date,
// literature block, and the standalone page.
type RenderStep struct {
	// DaysBack bounds the randomized publication date.
	DaysBack int
}

// Name returns the step identifier.
func (s *RenderStep) Name() string { return "render" }

// Do finalizes the article for delivery.
func (s *RenderStep) Do(_ context.Context, report *model.GenerationReport) error {
	a := report.Article

	a.ReadTime = model.EstimateReadTime(report.RawWordCount)
	daysBack := s.DaysBack
	if daysBack <= 0 {
		daysBack = 90
	}
	a.Date = model.RandomDate(daysBack)
	a.Literature = render.Literature(a.Sources)

	page, err := render.Document(a, report.Brief.Language)
	if err != nil {
		return err
	}
	a.HTML = page
	return nil
}
