package sources

import (
	"context"

	"github.com/blogsmith/blogsmith/internal/llm"
)

// GroundedClient is the slice of the LLM client the searcher needs.
type GroundedClient interface {
	GroundedSearch(ctx context.Context, model, query string, maxResults int) ([]llm.WebSource, error)
}

// GroundedSearcher finds replacement candidates through the LLM
// provider's web search grounding.
type GroundedSearcher struct {
	client GroundedClient
	model  string
}

// NewGroundedSearcher creates a Searcher using the given client and
// model identifier.
func NewGroundedSearcher(client GroundedClient, model string) *GroundedSearcher {
	return &GroundedSearcher{client: client, model: model}
}

// Search implements Searcher.
func (s *GroundedSearcher) Search(ctx context.Context, query string, maxResults int) ([]Candidate, error) {
	webSources, err := s.client.GroundedSearch(ctx, s.model, query, maxResults)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(webSources))
	for _, ws := range webSources {
		candidates = append(candidates, Candidate{URL: ws.URI, Title: ws.Title})
	}
	return candidates, nil
}
