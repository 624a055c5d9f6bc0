package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/blogsmith/blogsmith/internal/llm"
)

// fakeGroundedClient records the grounded search call and returns canned
// web sources.
type fakeGroundedClient struct {
	gotModel string
	gotQuery string
	sources  []llm.WebSource
	err      error
}

func (c *fakeGroundedClient) GroundedSearch(_ context.Context, model, query string, _ int) ([]llm.WebSource, error) {
	c.gotModel = model
	c.gotQuery = query
	return c.sources, c.err
}

// TestGroundedSearcher tests candidate mapping from web sources.
func TestGroundedSearcher(t *testing.T) {
	t.Parallel()

	t.Run("maps web sources to candidates", func(t *testing.T) {
		t.Parallel()

		client := &fakeGroundedClient{sources: []llm.WebSource{
			{URI: "https://a.example", Title: "A"},
			{URI: "https://b.example", Title: "B"},
		}}
		s := NewGroundedSearcher(client, "gemini-2.5-flash")

		got, err := s.Search(context.Background(), "cloud costs", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].URL != "https://a.example" || got[1].Title != "B" {
			t.Errorf("Search() = %+v", got)
		}
		if client.gotModel != "gemini-2.5-flash" {
			t.Errorf("model = %q", client.gotModel)
		}
		if client.gotQuery != "cloud costs" {
			t.Errorf("query = %q", client.gotQuery)
		}
	})

	t.Run("propagates search errors", func(t *testing.T) {
		t.Parallel()

		client := &fakeGroundedClient{err: errors.New("quota exceeded")}
		s := NewGroundedSearcher(client, "m")
		if _, err := s.Search(context.Background(), "q", 1); err == nil {
			t.Error("expected error")
		}
	})
}
