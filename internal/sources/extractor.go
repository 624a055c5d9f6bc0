package sources

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blogsmith/blogsmith/internal/model"
	"github.com/blogsmith/blogsmith/internal/urlcheck"
)

// Default pool sizes and limits.
const (
	defaultProbeWorkers    = 10
	defaultSearchWorkers   = 3
	defaultMaxReplacements = 3
	defaultMaxSources      = 20
)

// Resolver validates a single candidate URL. Implemented by
// urlcheck.Validator.
type Resolver interface {
	// Resolve probes the URL and reports validity, final URL, and title.
	Resolve(ctx context.Context, rawURL, fallbackTitle string) urlcheck.Result

	// Excluded reports whether the URL fails a host rule without probing.
	Excluded(rawURL string) bool
}

// Searcher finds candidate replacement URLs for a failed source via
// grounded web search.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Candidate, error)
}

// Candidate is one replacement suggestion from a Searcher.
type Candidate struct {
	URL   string
	Title string
}

// Extractor validates source lists and replaces dead entries.
type Extractor struct {
	resolver Resolver
	searcher Searcher

	// probeWorkers bounds concurrent URL probes.
	probeWorkers int

	// searchWorkers bounds concurrent replacement searches.
	searchWorkers int

	// maxReplacements caps how many failed sources get a replacement
	// attempt. Searches are slow; the rest are dropped.
	maxReplacements int

	// maxSources caps the source list before validation even starts.
	maxSources int

	logger *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithProbeWorkers sets the probe worker pool size.
func WithProbeWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.probeWorkers = n
		}
	}
}

// WithSearchWorkers sets the replacement search pool size.
func WithSearchWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.searchWorkers = n
		}
	}
}

// WithMaxReplacements caps replacement search attempts per article.
func WithMaxReplacements(n int) ExtractorOption {
	return func(e *Extractor) {
		if n >= 0 {
			e.maxReplacements = n
		}
	}
}

// WithMaxSources caps the source list size.
func WithMaxSources(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.maxSources = n
		}
	}
}

// WithSearcher enables replacement search for failed sources.
// Without a searcher, failed sources are simply dropped.
func WithSearcher(s Searcher) ExtractorOption {
	return func(e *Extractor) {
		e.searcher = s
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor backed by the given resolver.
func NewExtractor(resolver Resolver, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		resolver:        resolver,
		probeWorkers:    defaultProbeWorkers,
		searchWorkers:   defaultSearchWorkers,
		maxReplacements: defaultMaxReplacements,
		maxSources:      defaultMaxSources,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Extract validates the parsed source list and returns the surviving
// sources sorted by citation index. Sources that fail validation are
// dropped; up to maxReplacements of them get a replacement search keyed
// on the primary keyword and the source's own note. Surviving indices
// are never renumbered, so the result may have gaps.
func (e *Extractor) Extract(ctx context.Context, parsed []model.Source, keyword string) ([]model.Source, error) {
	if len(parsed) == 0 {
		return nil, nil
	}
	if len(parsed) > e.maxSources {
		e.logger.Warn("source list truncated",
			"parsed", len(parsed),
			"limit", e.maxSources)
		parsed = parsed[:e.maxSources]
	}

	validated, failed := e.validateAll(ctx, parsed)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if len(failed) > 0 && e.searcher != nil && e.maxReplacements > 0 {
		if len(failed) > e.maxReplacements {
			failed = failed[:e.maxReplacements]
		}
		replacements := e.findReplacements(ctx, failed, keyword)
		validated = append(validated, replacements...)
	}

	sort.Slice(validated, func(i, j int) bool {
		return validated[i].Index < validated[j].Index
	})

	return validated, nil
}

// validateAll probes every source concurrently. Results land in an
// index-aligned slice so output order is deterministic regardless of
// probe completion order.
func (e *Extractor) validateAll(ctx context.Context, parsed []model.Source) (valid, failed []model.Source) {
	results := make([]urlcheck.Result, len(parsed))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.probeWorkers)
	for i, src := range parsed {
		i, src := i, src
		g.Go(func() error {
			results[i] = e.resolver.Resolve(gctx, src.URL, src.Title)
			return nil
		})
	}
	// Workers never return errors; Wait only orders the slice writes.
	_ = g.Wait()

	for i, src := range parsed {
		if results[i].Valid {
			valid = append(valid, model.Source{
				URL:   results[i].FinalURL,
				Title: results[i].Title,
				Index: src.Index,
			})
			continue
		}
		e.logger.Debug("source failed validation",
			"index", src.Index,
			"url", src.URL)
		failed = append(failed, src)
	}

	return valid, failed
}

// findReplacements searches for a replacement per failed source and
// validates the candidates. A failed search or an invalid candidate
// drops the source silently.
func (e *Extractor) findReplacements(ctx context.Context, failed []model.Source, keyword string) []model.Source {
	var mu sync.Mutex
	var replacements []model.Source

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.searchWorkers)
	for _, src := range failed {
		src := src
		g.Go(func() error {
			query := fmt.Sprintf("%s %s", keyword, src.Title)
			candidates, err := e.searcher.Search(gctx, query, 1)
			if err != nil {
				e.logger.Debug("replacement search failed",
					"index", src.Index,
					"error", err)
				return nil
			}

			for _, candidate := range candidates {
				if e.resolver.Excluded(candidate.URL) {
					continue
				}
				result := e.resolver.Resolve(gctx, candidate.URL, candidate.Title)
				if !result.Valid {
					continue
				}
				mu.Lock()
				replacements = append(replacements, model.Source{
					URL:   result.FinalURL,
					Title: result.Title,
					Index: src.Index,
				})
				mu.Unlock()
				e.logger.Info("replaced dead source",
					"index", src.Index,
					"url", result.FinalURL)
				return nil
			}
			return nil
		})
	}
	_ = g.Wait()

	return replacements
}

// Dedupe removes sources whose normalized URLs collide, keeping the
// entry with the lowest citation index.
func Dedupe(sources []model.Source) []model.Source {
	seen := make(map[string]bool, len(sources))
	out := make([]model.Source, 0, len(sources))
	for _, src := range sources {
		key := src.NormalizedURL()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, src)
	}
	return out
}
