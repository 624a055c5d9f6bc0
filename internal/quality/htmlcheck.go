package quality

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// markdownBoldRe finds leftover markdown bold the model emitted
	// instead of <strong> tags.
	markdownBoldRe = regexp.MustCompile(`\*\*[^*]+\*\*`)

	// brokenHrefRe finds href attribute values split by whitespace,
	// usually a line break the model inserted inside a URL.
	brokenHrefRe = regexp.MustCompile(`href="([^"]*?)\s+([^"]*)"`)
)

// balancedTags are the tag pairs counted for the unmatched-tag check.
var balancedTags = []string{"p", "strong", "ul", "ol", "li", "h2", "h3"}

// HTMLStructureCheck finds structural damage in the article HTML:
// markdown leakage, whitespace inside hrefs, and unbalanced tags.
// Counting open versus close tags catches truncated output without a
// full HTML parse.
type HTMLStructureCheck struct{}

// Name returns the check identifier.
func (c *HTMLStructureCheck) Name() string { return "html_structure" }

// Check records findings for each kind of structural damage.
func (c *HTMLStructureCheck) Check(d *CheckData) {
	allHTML := d.Article.BodyText()

	if bold := markdownBoldRe.FindAllString(allHTML, 3); len(bold) > 0 {
		d.Result.AddError(c.Name(), fmt.Sprintf(
			"Markdown-style bold found (should use <strong>): %v", bold))
	}

	if broken := brokenHrefRe.FindAllString(allHTML, -1); len(broken) > 0 {
		d.Result.AddError(c.Name(), fmt.Sprintf(
			"Broken href attributes found: %d instances", len(broken)))
	}

	for _, tag := range balancedTags {
		open := "<" + tag + ">"
		closing := "</" + tag + ">"
		openCount := strings.Count(allHTML, open)
		closeCount := strings.Count(allHTML, closing)
		if openCount != closeCount {
			d.Result.AddError(c.Name(), fmt.Sprintf(
				"Unmatched HTML tags: %s (%d) vs %s (%d)",
				open, openCount, closing, closeCount))
		}
	}
}
