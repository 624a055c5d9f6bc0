package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoBrief is returned when no brief file or inline JSON is given.
	ErrNoBrief = errors.New("no brief specified: provide a brief file or use --input")

	// ErrMissingAPIKey is returned when generation is requested without an
	// API key from flags or the environment.
	ErrMissingAPIKey = errors.New("missing API key: set GEMINI_API_KEY or use --api-key")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when a worker pool width is not positive.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent generations at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidFormat is returned for output formats other than json/html.
	ErrInvalidFormat = errors.New(`invalid output format: must be "json" or "html"`)

	// ErrInvalidMaxSources is returned when the source cap is not positive.
	ErrInvalidMaxSources = errors.New("invalid max sources: must be positive")
)
