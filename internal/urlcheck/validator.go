package urlcheck

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxProbeBodySize limits how much of a probed page is read for error-page
// detection and title extraction. 5MB covers any realistic HTML page.
const maxProbeBodySize = 5 * 1024 * 1024

// defaultProbeTimeout is the per-request timeout when none is configured.
const defaultProbeTimeout = 8 * time.Second

// Result is the outcome of resolving one candidate URL.
type Result struct {
	// Valid reports whether the URL may be used as an article source.
	Valid bool

	// FinalURL is the post-redirect URL with tracking parameters removed.
	// Equals the input URL when the probe never completed.
	FinalURL string

	// Title is the display title for the literature block.
	Title string
}

// Cache stores probe outcomes between runs so repeated generations skip
// re-probing recently checked URLs.
type Cache interface {
	// Lookup returns a fresh cached outcome for the URL, if any.
	Lookup(ctx context.Context, url string) (valid bool, finalURL, title string, ok bool)

	// Store records a probe outcome. Failures are non-fatal and may be
	// silently dropped by implementations.
	Store(ctx context.Context, url string, valid bool, finalURL, title string)
}

// Validator resolves and validates candidate source URLs.
// Probes for different URLs are independent and safe to run in parallel;
// the validator itself is stateless apart from the shared HTTP client.
type Validator struct {
	// client is the shared HTTP client. The connection pool is reused
	// across all probes for one article's processing lifetime.
	client *http.Client

	// companyHost excludes the caller's own domain ("must be external").
	companyHost string

	// competitorHosts are normalized competitor domains to exclude.
	competitorHosts []string

	// language selects the localized fallback title.
	language string

	// userAgent is sent on every probe.
	userAgent string

	// timeout bounds each individual network operation.
	timeout time.Duration

	// cache optionally short-circuits probes for recently checked URLs.
	cache Cache

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithCompany excludes the company's own host and its subdomains.
func WithCompany(companyURL string) Option {
	return func(v *Validator) {
		v.companyHost = NormalizeHost(companyURL)
	}
}

// WithCompetitors excludes competitor hosts and their subdomains.
func WithCompetitors(domains []string) Option {
	return func(v *Validator) {
		hosts := make([]string, 0, len(domains))
		for _, d := range domains {
			if h := NormalizeHost(d); h != "" {
				hosts = append(hosts, h)
			}
		}
		v.competitorHosts = hosts
	}
}

// WithLanguage sets the language for localized fallback titles.
func WithLanguage(lang string) Option {
	return func(v *Validator) {
		v.language = lang
	}
}

// WithUserAgent sets a custom User-Agent header for probes.
func WithUserAgent(ua string) Option {
	return func(v *Validator) {
		v.userAgent = ua
	}
}

// WithTimeout sets the per-request probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Validator) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// WithCache enables the probe result cache.
func WithCache(cache Cache) Option {
	return func(v *Validator) {
		v.cache = cache
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New creates a Validator using the given HTTP client.
//
// Design decision: We require an external client because the connection
// pool must be shared across the worker pool validating one article's
// sources, and tests need to inject httptest transports.
func New(client *http.Client, opts ...Option) *Validator {
	v := &Validator{
		client:   client,
		language: "en",
		timeout:  defaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	return v
}

// Excluded reports whether the URL fails a host exclusion rule (forbidden
// grounding hosts, the company's own domain, or a competitor domain).
// Exclusion is decided without any network I/O so callers can short-circuit
// probes for excluded hosts.
func (v *Validator) Excluded(rawURL string) bool {
	host := NormalizeHost(rawURL)
	if host == "" {
		return true
	}
	if IsForbiddenHost(host) {
		return true
	}
	if v.companyHost != "" && SameOrSubdomain(host, v.companyHost) {
		return true
	}
	for _, competitor := range v.competitorHosts {
		if SameOrSubdomain(host, competitor) {
			return true
		}
	}
	return false
}

// Resolve validates a candidate URL end to end: structural checks, host
// exclusion, redirect resolution, liveness probe, error-page detection,
// and title extraction. fallbackTitle is used when the page yields no
// usable title; when it is empty a localized "Source: {host}" is used.
//
// Network failures of any kind produce an invalid Result, never an error:
// a bad source is dropped, not escalated.
func (v *Validator) Resolve(ctx context.Context, rawURL, fallbackTitle string) Result {
	invalid := Result{Valid: false, FinalURL: rawURL, Title: fallbackTitle}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid
	}

	if v.Excluded(rawURL) {
		v.logger.Debug("source excluded by host rules", "url", rawURL)
		return invalid
	}

	if v.cache != nil {
		if valid, finalURL, title, ok := v.cache.Lookup(ctx, rawURL); ok {
			v.logger.Debug("probe cache hit", "url", rawURL, "valid", valid)
			return Result{Valid: valid, FinalURL: finalURL, Title: title}
		}
	}

	result := v.probe(ctx, rawURL, fallbackTitle)

	if v.cache != nil {
		v.cache.Store(ctx, rawURL, result.Valid, result.FinalURL, result.Title)
	}

	return result
}

// probe performs the HEAD-then-GET liveness check.
func (v *Validator) probe(ctx context.Context, rawURL, fallbackTitle string) Result {
	invalid := Result{Valid: false, FinalURL: rawURL, Title: fallbackTitle}

	// HEAD first: cheap, and many servers answer it correctly.
	if resp, err := v.do(ctx, http.MethodHead, rawURL); err == nil {
		finalURL := StripTrackingParams(resp.finalURL)
		if resp.status == http.StatusOK {
			if HasErrorPath(finalURL) {
				return invalid
			}
			// HEAD carries no body; fetch the page to check for a
			// disguised error page and to extract the title.
			if got, err := v.do(ctx, http.MethodGet, finalURL); err == nil && got.status == http.StatusOK {
				if IsErrorPage(finalURL, got.status, got.body) {
					return invalid
				}
				return v.valid(finalURL, got, fallbackTitle)
			}
		}
	}

	// HEAD rejected or failed: some servers only answer GET.
	got, err := v.do(ctx, http.MethodGet, rawURL)
	if err != nil || got.status != http.StatusOK {
		return invalid
	}
	finalURL := StripTrackingParams(got.finalURL)
	if IsErrorPage(finalURL, got.status, got.body) {
		return invalid
	}
	return v.valid(finalURL, got, fallbackTitle)
}

// valid assembles a successful Result, choosing the best display title.
func (v *Validator) valid(finalURL string, resp *probeResponse, fallbackTitle string) Result {
	title := ""
	if strings.Contains(resp.contentType, "text/html") {
		title = ExtractTitle(resp.body)
	}
	if title == "" {
		title = strings.TrimSpace(fallbackTitle)
	}
	if title == "" {
		title = FallbackTitle(v.language, NormalizeHost(finalURL))
	}
	return Result{Valid: true, FinalURL: finalURL, Title: title}
}

// probeResponse is the subset of an HTTP response the validator inspects.
type probeResponse struct {
	status      int
	finalURL    string
	contentType string
	body        string
}

// do issues one HTTP request with the configured timeout, following
// redirects, and reads a bounded amount of body for GET requests.
func (v *Validator) do(ctx context.Context, method, rawURL string) (*probeResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if v.userAgent != "" {
		req.Header.Set("User-Agent", v.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on read path

	body := ""
	if method == http.MethodGet {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBodySize))
		if err == nil {
			body = string(data)
		}
	}

	return &probeResponse{
		status:      resp.StatusCode,
		finalURL:    resp.Request.URL.String(),
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}, nil
}
