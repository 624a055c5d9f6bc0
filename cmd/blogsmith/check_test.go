package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blogsmith/blogsmith/internal/model"
	"github.com/blogsmith/blogsmith/internal/quality"
)

const checkBrief = `{
	"primary_keyword": "cloud cost optimization",
	"company_url": "https://example.com",
	"company_name": "Example Corp",
	"company_location": "United States"
}`

// checkArticle returns an article that survives the quality gate.
func checkArticle() *model.Article {
	body := "<p>Cloud cost optimization starts with visibility. " +
		strings.Repeat("Teams review usage reports and remove idle resources. ", 6) + "</p>"
	return &model.Article{
		Headline:        "Cloud Cost Optimization in Practice",
		Teaser:          "How to cut cloud waste without slowing delivery.",
		Intro:           body,
		MetaTitle:       "Cloud Cost Optimization Guide 2026",
		MetaDescription: "How teams apply cloud cost optimization to cut waste without slowing delivery this year.",
		Sections: []model.Section{
			{Title: "Why Costs Drift", Content: body},
			{Title: "Fixing It", Content: body},
		},
	}
}

// writeArticleFile writes an article JSON file into a temp directory.
func writeArticleFile(t *testing.T, article *model.Article) string {
	t.Helper()

	data, err := json.Marshal(article)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "article.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCheck executes the check command through the root command.
func runCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"check"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

// TestCheckCmd tests the standalone quality gate command.
func TestCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("passing article writes a report", func(t *testing.T) {
		t.Parallel()

		path := writeArticleFile(t, checkArticle())
		output, err := runCheck(t, path, "--brief", checkBrief)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(output, "ARTICLE GENERATION REPORT") {
			t.Errorf("missing report header: %s", output)
		}
		if !strings.Contains(output, "AFTER FIXES:  0 errors") {
			t.Errorf("missing clean post-fix summary: %s", output)
		}
	})

	t.Run("unrepairable article fails the gate", func(t *testing.T) {
		t.Parallel()

		article := checkArticle()
		article.Sections = article.Sections[:1]
		path := writeArticleFile(t, article)

		_, err := runCheck(t, path, "--brief", checkBrief)

		var gateErr *quality.GateError
		if !errors.As(err, &gateErr) {
			t.Fatalf("error = %v, want *quality.GateError", err)
		}
	})

	t.Run("writes the repaired article", func(t *testing.T) {
		t.Parallel()

		article := checkArticle()
		article.MetaTitle = strings.Repeat("Cloud Cost Optimization Guide ", 3)
		path := writeArticleFile(t, article)
		outPath := filepath.Join(t.TempDir(), "fixed.json")

		if _, err := runCheck(t, path, "--brief", checkBrief, "-o", outPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("repaired article not written: %v", err)
		}
		var fixed model.Article
		if err := json.Unmarshal(data, &fixed); err != nil {
			t.Fatalf("repaired article is not valid JSON: %v", err)
		}
		if got := len([]rune(fixed.MetaTitle)); got > 55 {
			t.Errorf("meta title still %d runes after repair", got)
		}
		if !strings.HasSuffix(fixed.MetaTitle, "...") {
			t.Errorf("meta title not truncated: %q", fixed.MetaTitle)
		}
	})

	t.Run("invalid brief is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeArticleFile(t, checkArticle())
		_, err := runCheck(t, path, "--brief", `{"primary_keyword": ""}`)
		if err == nil || !strings.Contains(err.Error(), "invalid brief") {
			t.Errorf("error = %v, want brief rejection", err)
		}
	})
}

// TestLoadArticle tests both accepted article file shapes.
func TestLoadArticle(t *testing.T) {
	t.Parallel()

	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "in.json")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("bare article object", func(t *testing.T) {
		t.Parallel()

		path := writeArticleFile(t, checkArticle())
		article, err := loadArticle(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if article.Headline != "Cloud Cost Optimization in Practice" {
			t.Errorf("Headline = %q", article.Headline)
		}
	})

	t.Run("wrapped generation output", func(t *testing.T) {
		t.Parallel()

		inner, err := json.Marshal(checkArticle())
		if err != nil {
			t.Fatal(err)
		}
		path := writeFile(t, `{"brief": {}, "article": `+string(inner)+`}`)

		article, err := loadArticle(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(article.Sections) != 2 {
			t.Errorf("Sections = %d, want 2", len(article.Sections))
		}
	})

	t.Run("empty object has no article", func(t *testing.T) {
		t.Parallel()

		_, err := loadArticle(writeFile(t, `{}`))
		if err == nil || !strings.Contains(err.Error(), "no article found") {
			t.Errorf("error = %v, want no article found", err)
		}
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := loadArticle(writeFile(t, `not json`))
		if err == nil || !strings.Contains(err.Error(), "failed to parse article JSON") {
			t.Errorf("error = %v, want parse failure", err)
		}
	})

	t.Run("missing file is reported", func(t *testing.T) {
		t.Parallel()

		_, err := loadArticle(filepath.Join(t.TempDir(), "absent.json"))
		if err == nil || !strings.Contains(err.Error(), "failed to read article") {
			t.Errorf("error = %v, want read failure", err)
		}
	})
}
