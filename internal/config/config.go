package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the editorial pipeline's operating assumptions: generation
// is slow and rare, probes are fast and numerous.
const (
	// DefaultProbeTimeout applies to each URL liveness probe and redirect
	// resolution. Public sites that take longer than 8 seconds to answer a
	// HEAD/GET are treated as dead rather than retried.
	DefaultProbeTimeout = 8 * time.Second

	// DefaultGenerateTimeout bounds one generation call. Long-form article
	// generation regularly takes minutes, so this is deliberately generous.
	DefaultGenerateTimeout = 10 * time.Minute

	// DefaultProbeWorkers is the worker pool width for concurrent source
	// validation. Probes are independent I/O-bound requests; ten in flight
	// keeps total validation time near the slowest probe without hammering
	// any single host.
	DefaultProbeWorkers = 10

	// DefaultSearchWorkers is the pool width for replacement searches.
	// Grounded search calls are rate-sensitive, so this stays small.
	DefaultSearchWorkers = 3

	// DefaultMaxReplacements caps how many failed sources get a
	// replacement search. Beyond the first few, missing sources are cheaper
	// to drop than to re-research.
	DefaultMaxReplacements = 3

	// DefaultMaxSources caps parsed source entries before validation.
	DefaultMaxSources = 20

	// DefaultBatchSize is the number of briefs generated concurrently when
	// multiple inputs are given.
	DefaultBatchSize = 2

	// DefaultContentModel generates the article body.
	DefaultContentModel = "gemini-2.5-pro"

	// DefaultValidatorModel runs the grounded replacement search. A faster,
	// cheaper model is sufficient for single-result lookups.
	DefaultValidatorModel = "gemini-2.5-flash"

	// DefaultBaseURL is the generation API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultUserAgent is sent on URL probes. A browser-like agent avoids
	// the bot blocks that would misreport perfectly reachable sources.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultCacheMaxAge is how long a cached probe result stays fresh.
	DefaultCacheMaxAge = 24 * time.Hour

	// AppName is the application name used for XDG directory paths.
	AppName = "blogsmith"
)

// Output format values accepted by the --format flag.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// Config holds all runtime options for blogsmith.
// This struct is populated from CLI flags and the environment and passed
// through the application via dependency injection.
type Config struct {
	// APIKey authenticates against the generation API.
	// Read from the GEMINI_API_KEY or GOOGLE_API_KEY environment variables
	// when not passed explicitly.
	APIKey string

	// BaseURL is the generation API endpoint. Overridable for testing.
	BaseURL string

	// ContentModel is the model used for article generation.
	ContentModel string

	// ValidatorModel is the model used for grounded replacement search.
	ValidatorModel string

	// ProbeTimeout is the per-request timeout for URL probes.
	ProbeTimeout time.Duration

	// GenerateTimeout bounds one generation call.
	GenerateTimeout time.Duration

	// ProbeWorkers is the source validation worker pool width.
	ProbeWorkers int

	// SearchWorkers is the replacement search worker pool width.
	SearchWorkers int

	// MaxSources caps parsed source entries before validation.
	MaxSources int

	// BatchSize is the number of briefs processed concurrently.
	BatchSize int

	// Format selects the output rendering: "json" or "html".
	Format string

	// OutputPath is the output file; empty writes to stdout.
	OutputPath string

	// ReportPath is where the markdown quality report is written.
	// Empty disables the report.
	ReportPath string

	// CacheDir is where the URL probe cache database lives.
	CacheDir string

	// NoCache disables the probe cache entirely.
	NoCache bool

	// Verbose enables slog.LevelDebug output.
	Verbose bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:         DefaultBaseURL,
		ContentModel:    DefaultContentModel,
		ValidatorModel:  DefaultValidatorModel,
		ProbeTimeout:    DefaultProbeTimeout,
		GenerateTimeout: DefaultGenerateTimeout,
		ProbeWorkers:    DefaultProbeWorkers,
		SearchWorkers:   DefaultSearchWorkers,
		MaxSources:      DefaultMaxSources,
		BatchSize:       DefaultBatchSize,
		Format:          FormatJSON,
		CacheDir:        DefaultCacheDir(),
	}
}

// DefaultCacheDir returns the XDG data directory for the probe cache.
func DefaultCacheDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks that the configuration is internally consistent.
// It returns sentinel errors so callers can branch with errors.Is.
func (c *Config) Validate() error {
	if c.ProbeTimeout <= 0 || c.GenerateTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ProbeWorkers <= 0 || c.SearchWorkers <= 0 {
		return ErrInvalidWorkers
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.Format != FormatJSON && c.Format != FormatHTML {
		return ErrInvalidFormat
	}
	if c.MaxSources <= 0 {
		return ErrInvalidMaxSources
	}
	return nil
}
