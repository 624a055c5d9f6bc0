package quality

import (
	"fmt"
	"strings"
	"testing"

	"github.com/blogsmith/blogsmith/internal/model"
)

// testBrief returns a brief for quality checks.
func testBrief() *model.Brief {
	return &model.Brief{
		PrimaryKeyword: "cloud cost optimization",
		CompanyURL:     "https://example.com",
		CompanyName:    "Example Corp",
		Location:       "United States",
		Language:       "en",
		Links:          []string{"/pricing", "/blog/getting-started"},
	}
}

// cleanArticle returns an article that passes every fatal check.
// Warnings are acceptable; tests asserting on individual checks mutate
// the relevant fields.
func cleanArticle() *model.Article {
	paragraph := func(citation int) string {
		return fmt.Sprintf(
			"<p>Cloud cost optimization programs cut waste by matching spend to demand [%d]. %s</p>",
			citation, strings.Repeat("Teams review usage weekly and act on the findings. ", 10))
	}

	a := &model.Article{
		Headline:        "Cloud Cost Optimization in Practice",
		Teaser:          "How engineering teams cut cloud waste.",
		Intro:           paragraph(1),
		MetaTitle:       "Cloud Cost Optimization: A Practical Guide",
		MetaDescription: "Learn how engineering teams apply cloud cost optimization to cut waste without slowing delivery.",
		Sections: []model.Section{
			{Title: "Why Costs Drift", Content: paragraph(2) + "<ul><li>Idle capacity</li><li>Oversized instances</li></ul>"},
			{Title: "Building a Program", Content: paragraph(3) + "<ol><li>Measure</li><li>Act</li></ol>"},
			{Title: "Measuring Results", Content: paragraph(1)},
		},
		KeyTakeaways: []string{"Measure first", "Automate rightsizing", "Review monthly"},
		FAQ: []model.FAQItem{
			{Question: "Q1?", Answer: "A1."},
			{Question: "Q2?", Answer: "A2."},
			{Question: "Q3?", Answer: "A3."},
		},
		PAA: []model.PAAItem{
			{Question: "P1?", Answer: "B1."},
			{Question: "P2?", Answer: "B2."},
		},
		Sources: []model.Source{
			{Index: 1, URL: "https://research.example/study", Title: "Cost Study 2026"},
			{Index: 2, URL: "https://gov.example/report", Title: "Spending Report"},
			{Index: 3, URL: "https://edu.example/paper", Title: "Efficiency Paper"},
		},
	}
	return a
}

// TestCheckerValidate tests the full battery on representative articles.
func TestCheckerValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean article has no errors", func(t *testing.T) {
		t.Parallel()

		checker := NewChecker()
		result := checker.Validate(cleanArticle(), testBrief())

		if errs := result.Errors(); len(errs) != 0 {
			t.Errorf("unexpected errors: %v", errs)
		}
	})

	t.Run("broken article accumulates errors across checks", func(t *testing.T) {
		t.Parallel()

		a := cleanArticle()
		a.MetaTitle = strings.Repeat("Very Long Title ", 10)
		a.Sections = a.Sections[:1]
		a.Headline = "Unrelated"
		a.Intro = "<p>Nothing on topic here.</p>"
		a.Sections[0].Content = "<p>Still nothing relevant.</p>"

		checker := NewChecker()
		result := checker.Validate(a, testBrief())

		errs := result.Errors()
		if len(errs) < 3 {
			t.Fatalf("expected errors from multiple checks, got: %v", errs)
		}
		assertHasFinding(t, errs, "Meta title too long")
		assertHasFinding(t, errs, "Too few sections (1, minimum 2)")
		assertHasFinding(t, errs, "Primary keyword 'cloud cost optimization' not found in content")
	})

	t.Run("custom battery replaces the default", func(t *testing.T) {
		t.Parallel()

		checker := NewChecker(WithChecks(&MetaTagCheck{}))
		a := cleanArticle()
		a.Sections = nil

		result := checker.Validate(a, testBrief())
		if !result.IsValid() {
			t.Errorf("section errors leaked through a meta-only battery: %v", result.Errors())
		}
	})
}

// assertHasFinding fails unless one of the messages contains want.
func assertHasFinding(t *testing.T, messages []string, want string) {
	t.Helper()

	for _, msg := range messages {
		if strings.Contains(msg, want) {
			return
		}
	}
	t.Errorf("no finding contains %q in %v", want, messages)
}
