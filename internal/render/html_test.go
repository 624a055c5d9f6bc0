package render

import (
	"strings"
	"testing"

	"github.com/blogsmith/blogsmith/internal/model"
)

// TestLiterature tests the numbered source block.
func TestLiterature(t *testing.T) {
	t.Parallel()

	t.Run("renders numbered entries", func(t *testing.T) {
		t.Parallel()

		got := Literature([]model.Source{
			{Index: 1, URL: "https://a.example", Title: "First Study"},
			{Index: 3, URL: "https://b.example", Title: "Second & Third"},
		})

		if !strings.Contains(got, `<p>[1]: <a href="https://a.example" target="_blank">First Study</a></p>`) {
			t.Errorf("missing first entry: %s", got)
		}
		if !strings.Contains(got, "[3]:") {
			t.Errorf("index gap not preserved: %s", got)
		}
		if !strings.Contains(got, "Second &amp; Third") {
			t.Errorf("title not escaped: %s", got)
		}
	})

	t.Run("zero index falls back to position", func(t *testing.T) {
		t.Parallel()

		got := Literature([]model.Source{{URL: "https://a.example", Title: "T"}})
		if !strings.Contains(got, "[1]:") {
			t.Errorf("missing positional index: %s", got)
		}
	})

	t.Run("empty list renders nothing", func(t *testing.T) {
		t.Parallel()

		if got := Literature(nil); got != "" {
			t.Errorf("Literature(nil) = %q", got)
		}
	})
}

// TestDocument tests the standalone page rendering.
func TestDocument(t *testing.T) {
	t.Parallel()

	article := &model.Article{
		Headline: "Cloud Costs <Explained>",
		Subtitle: "A deeper look",
		Teaser:   "Why bills grow.",
		Intro:    "<p>Intro paragraph.</p>",
		Sections: []model.Section{
			{Title: "Why Costs Drift", Content: "<p>Body one.</p>"},
			{Title: "", Content: "<p>Untitled body.</p>"},
			{Title: "Fixing It", Content: "<p>Body two.</p>"},
		},
		KeyTakeaways:  []string{"Measure", "Act"},
		SearchQueries: []string{"cloud cost benchmarks"},
		Literature:    `<p>[1]: <a href="https://a.example" target="_blank">Study</a></p>`,
	}

	t.Run("renders a complete page", func(t *testing.T) {
		t.Parallel()

		got, err := Document(article, "de")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(got, `<html lang="de">`) {
			t.Error("missing language attribute")
		}
		if !strings.Contains(got, "Cloud Costs &lt;Explained&gt;") {
			t.Error("headline not escaped")
		}
		if !strings.Contains(got, "<p>Intro paragraph.</p>") {
			t.Error("intro HTML escaped or missing")
		}
		if !strings.Contains(got, `id="section-why-costs-drift"`) {
			t.Error("missing section anchor")
		}
		if !strings.Contains(got, "<li>Measure</li>") {
			t.Error("missing key takeaway")
		}
		if !strings.Contains(got, "<li>cloud cost benchmarks</li>") {
			t.Error("missing search query")
		}
		if !strings.Contains(got, `href="https://a.example"`) {
			t.Error("missing literature block")
		}
	})

	t.Run("untitled sections are skipped", func(t *testing.T) {
		t.Parallel()

		got, err := Document(article, "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(got, "Untitled body.") {
			t.Error("untitled section rendered")
		}
	})

	t.Run("empty language defaults to en", func(t *testing.T) {
		t.Parallel()

		got, err := Document(article, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, `<html lang="en">`) {
			t.Error("missing default language")
		}
	})
}
