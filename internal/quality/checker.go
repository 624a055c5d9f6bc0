package quality

import (
	"log/slog"

	"github.com/blogsmith/blogsmith/internal/model"
)

// CheckData carries the article and brief through one validation run.
// Checks append findings to Result; they never mutate the article.
type CheckData struct {
	// Article is the parsed article under validation.
	Article *model.Article

	// Brief is the generation input, used for keyword and link checks.
	Brief *model.Brief

	// Result accumulates findings across all checks.
	Result *model.ValidationResult
}

// Check is a single editorial quality check.
type Check interface {
	// Name returns the check identifier used in findings.
	Name() string

	// Check inspects the article and records findings on d.Result.
	Check(d *CheckData)
}

// Checker runs the full check battery over an article.
type Checker struct {
	checks []Check
	logger *slog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithChecks replaces the default check battery.
func WithChecks(checks ...Check) CheckerOption {
	return func(c *Checker) {
		c.checks = checks
	}
}

// WithCheckerLogger sets a custom logger.
func WithCheckerLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker with the default battery. The battery
// order matters only for finding readability; checks are independent.
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		checks: []Check{
			&MetaTagCheck{},
			&CitationCheck{},
			&HTMLStructureCheck{},
			&InternalLinkCheck{},
			&WordCountCheck{},
			&DuplicateSourceCheck{},
			&SectionStructureCheck{},
			&SourceQualityCheck{},
			&ContentQualityCheck{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Validate runs every check and returns the collected findings.
func (c *Checker) Validate(article *model.Article, brief *model.Brief) *model.ValidationResult {
	d := &CheckData{
		Article: article,
		Brief:   brief,
		Result:  model.NewValidationResult(),
	}

	for _, check := range c.checks {
		check.Check(d)
	}

	c.logger.Debug("quality validation complete",
		"errors", len(d.Result.Errors()),
		"warnings", len(d.Result.Warnings()))

	return d.Result
}
