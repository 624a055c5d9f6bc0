package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/blogsmith/blogsmith/internal/llm"
	"github.com/blogsmith/blogsmith/internal/model"
	"github.com/blogsmith/blogsmith/internal/quality"
)

// fakeGenerator returns a canned completion.
type fakeGenerator struct {
	gotReq llm.Request
	resp   *llm.Response
	err    error
}

func (g *fakeGenerator) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	g.gotReq = req
	return g.resp, g.err
}

// fakeExtractor passes sources through, recording the call.
type fakeExtractor struct {
	gotParsed  []model.Source
	gotKeyword string
	out        []model.Source
	err        error
}

func (e *fakeExtractor) Extract(_ context.Context, parsed []model.Source, keyword string) ([]model.Source, error) {
	e.gotParsed = parsed
	e.gotKeyword = keyword
	if e.err != nil {
		return nil, e.err
	}
	if e.out != nil {
		return e.out, nil
	}
	return parsed, nil
}

// samplePayload is a well-formed model payload for parse tests.
func samplePayload() map[string]any {
	body := "<p>Cloud cost optimization matters. " +
		strings.Repeat("Review usage and act on findings every week. ", 8) + "[1]</p>"
	return map[string]any{
		"Headline":           "Cloud Cost Optimization in Practice",
		"Teaser":             "Cut waste fast [1].",
		"Intro":              body,
		"Meta Title":         "Cloud Cost Optimization Guide",
		"Meta Description":   "How teams apply cloud cost optimization to cut waste without slowing delivery this year.",
		"section_01_title":   "Why Costs Drift",
		"section_01_content": "<p>Costs drift when **nobody** watches [2].</p>",
		"section_02_title":   "Fixing It",
		"section_02_content": body,
		"Sources":            "[1]: https://a.example/study – Cost study\n[2]: https://b.example/report – Industry report",
	}
}

// rawResponse wraps the payload the way the model returns it.
func rawResponse(t *testing.T, payload map[string]any) string {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return "Here is the article:\n" + string(data)
}

// TestGenerateStep tests prompt assembly and response capture.
func TestGenerateStep(t *testing.T) {
	t.Parallel()

	t.Run("stores the raw response", func(t *testing.T) {
		t.Parallel()

		gen := &fakeGenerator{resp: &llm.Response{Content: "raw output", Model: "m"}}
		step := &GenerateStep{Generator: gen, Model: "m"}
		report := model.NewGenerationReport(testReportBrief())

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.RawResponse != "raw output" {
			t.Errorf("RawResponse = %q", report.RawResponse)
		}
		if gen.gotReq.Temperature == nil || *gen.gotReq.Temperature != 0.3 {
			t.Errorf("Temperature = %v, want 0.3", gen.gotReq.Temperature)
		}
		if gen.gotReq.MaxTokens != 65536 {
			t.Errorf("MaxTokens = %d", gen.gotReq.MaxTokens)
		}
		if len(gen.gotReq.Messages) != 1 ||
			!strings.Contains(gen.gotReq.Messages[0].Content, "cloud cost optimization") {
			t.Errorf("prompt missing keyword: %+v", gen.gotReq.Messages)
		}
	})

	t.Run("wraps generation failures", func(t *testing.T) {
		t.Parallel()

		gen := &fakeGenerator{err: errors.New("quota exhausted")}
		step := &GenerateStep{Generator: gen, Model: "m"}
		report := model.NewGenerationReport(testReportBrief())

		err := step.Do(context.Background(), report)
		if err == nil || !strings.Contains(err.Error(), "content generation failed") {
			t.Errorf("error = %v", err)
		}
	})
}

// TestParseStep tests payload extraction and HTML normalization.
func TestParseStep(t *testing.T) {
	t.Parallel()

	t.Run("builds and cleans the article", func(t *testing.T) {
		t.Parallel()

		report := model.NewGenerationReport(testReportBrief())
		report.RawResponse = rawResponse(t, samplePayload())

		if err := (&ParseStep{}).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		a := report.Article
		if a == nil {
			t.Fatal("Article not set")
		}
		if a.Headline != "Cloud Cost Optimization in Practice" {
			t.Errorf("Headline = %q", a.Headline)
		}
		if strings.Contains(a.Sections[0].Content, "**") {
			t.Errorf("markdown bold survived cleaning: %q", a.Sections[0].Content)
		}
		if !strings.Contains(a.Sections[0].Content, "<strong>nobody</strong>") {
			t.Errorf("bold not converted: %q", a.Sections[0].Content)
		}
		if strings.Contains(a.Teaser, "[1]") {
			t.Errorf("teaser citation survived: %q", a.Teaser)
		}
		if report.RawWordCount == 0 {
			t.Error("RawWordCount not recorded")
		}
	})

	t.Run("no payload is fatal", func(t *testing.T) {
		t.Parallel()

		report := model.NewGenerationReport(testReportBrief())
		report.RawResponse = "The model refused to answer."

		if err := (&ParseStep{}).Do(context.Background(), report); !errors.Is(err, ErrEmptyPayload) {
			t.Errorf("error = %v, want ErrEmptyPayload", err)
		}
	})
}

// TestSourcesStep tests source extraction wiring.
func TestSourcesStep(t *testing.T) {
	t.Parallel()

	t.Run("parses, validates, and dedupes", func(t *testing.T) {
		t.Parallel()

		extractor := &fakeExtractor{out: []model.Source{
			{Index: 1, URL: "https://a.example/study", Title: "Cost study"},
			{Index: 2, URL: "https://a.example/study/", Title: "Duplicate"},
			{Index: 3, URL: "https://b.example/report", Title: "Report"},
		}}

		report := model.NewGenerationReport(testReportBrief())
		report.Payload = samplePayload()
		report.Article = &model.Article{}

		if err := (&SourcesStep{Extractor: extractor}).Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if extractor.gotKeyword != "cloud cost optimization" {
			t.Errorf("keyword = %q", extractor.gotKeyword)
		}
		if len(extractor.gotParsed) != 2 {
			t.Errorf("parsed %d sources from payload, want 2", len(extractor.gotParsed))
		}
		if len(report.Article.Sources) != 2 {
			t.Errorf("Sources = %+v, want duplicate removed", report.Article.Sources)
		}
	})

	t.Run("extractor failure propagates", func(t *testing.T) {
		t.Parallel()

		report := model.NewGenerationReport(testReportBrief())
		report.Payload = samplePayload()
		report.Article = &model.Article{}

		step := &SourcesStep{Extractor: &fakeExtractor{err: errors.New("probe pool broken")}}
		if err := step.Do(context.Background(), report); err == nil {
			t.Error("expected error")
		}
	})
}

// TestQualityStep tests the validate, fix, revalidate gate.
func TestQualityStep(t *testing.T) {
	t.Parallel()

	// gateArticle builds an article whose only fatal flaw is repairable.
	gateArticle := func() *model.Article {
		body := "<p>Cloud cost optimization in depth. " +
			strings.Repeat("Practical advice repeated for length. ", 10) + "</p>"
		return &model.Article{
			Headline:        "Cloud Cost Optimization",
			MetaTitle:       strings.Repeat("Cloud Cost Optimization Guide ", 3),
			MetaDescription: "How teams apply cloud cost optimization to cut waste without slowing delivery this year.",
			Intro:           body,
			Sections: []model.Section{
				{Title: "A", Content: body},
				{Title: "B", Content: body},
			},
		}
	}

	t.Run("repairable article passes the gate", func(t *testing.T) {
		t.Parallel()

		report := model.NewGenerationReport(testReportBrief())
		report.Article = gateArticle()

		step := &QualityStep{Checker: quality.NewChecker()}
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.PreFix == nil || report.PreFix.IsValid() {
			t.Error("expected pre-fix errors for the overlong meta title")
		}
		if report.PostFix == nil || !report.PostFix.IsValid() {
			t.Errorf("post-fix errors remain: %v", report.PostFix.Errors())
		}
		if got := len([]rune(report.Article.MetaTitle)); got > 55 {
			t.Errorf("meta title still %d runes", got)
		}
	})

	t.Run("unrepairable article fails with a gate error", func(t *testing.T) {
		t.Parallel()

		a := gateArticle()
		a.Sections = a.Sections[:1]
		report := model.NewGenerationReport(testReportBrief())
		report.Article = a

		step := &QualityStep{Checker: quality.NewChecker()}
		err := step.Do(context.Background(), report)

		var gateErr *quality.GateError
		if !errors.As(err, &gateErr) {
			t.Fatalf("error = %v, want *quality.GateError", err)
		}
		if len(gateErr.Errors) == 0 {
			t.Error("gate error carries no messages")
		}
	})
}

// TestRenderStep tests derived field production.
func TestRenderStep(t *testing.T) {
	t.Parallel()

	report := model.NewGenerationReport(testReportBrief())
	report.RawWordCount = 1500
	report.Article = &model.Article{
		Headline: "Cloud Cost Optimization",
		Intro:    "<p>Intro.</p>",
		Sections: []model.Section{{Title: "One", Content: "<p>Body.</p>"}},
		Sources:  []model.Source{{Index: 1, URL: "https://a.example", Title: "Study"}},
	}

	if err := (&RenderStep{}).Do(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := report.Article
	if a.ReadTime != 8 {
		t.Errorf("ReadTime = %d, want 8", a.ReadTime)
	}
	if a.Date == "" {
		t.Error("Date not set")
	}
	if !strings.Contains(a.Literature, "[1]:") {
		t.Errorf("Literature = %q", a.Literature)
	}
	if !strings.Contains(a.HTML, "<h1>Cloud Cost Optimization</h1>") {
		t.Error("HTML page missing headline")
	}
	if !strings.Contains(a.HTML, `lang="en"`) {
		t.Error("HTML page missing language")
	}
}
