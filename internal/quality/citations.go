package quality

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// citationRe matches bracketed citation groups: [1], [1,2], [1 2].
var citationRe = regexp.MustCompile(`\[(\d+(?:[\s,]+?\d+)*)\]`)

// citationNumberRe extracts the individual numbers inside a group.
var citationNumberRe = regexp.MustCompile(`\d+`)

// extractCitations returns the set of citation numbers referenced in text.
func extractCitations(text string) map[int]struct{} {
	citations := make(map[int]struct{})
	for _, group := range citationRe.FindAllStringSubmatch(text, -1) {
		for _, num := range citationNumberRe.FindAllString(group[1], -1) {
			if n, err := strconv.Atoi(num); err == nil {
				citations[n] = struct{}{}
			}
		}
	}
	return citations
}

// CitationCheck reconciles in-text citations with the source list.
// Sources never cited produce a warning; citations without a source are
// marked as orphans for the fixer to strip.
type CitationCheck struct{}

// Name returns the check identifier.
func (c *CitationCheck) Name() string { return "citations" }

// Check records citation findings and marks orphans on the result.
func (c *CitationCheck) Check(d *CheckData) {
	cited := extractCitations(d.Article.Intro)
	for _, section := range d.Article.Sections {
		for n := range extractCitations(section.Content) {
			cited[n] = struct{}{}
		}
	}

	sourceIndices := make(map[int]struct{}, len(d.Article.Sources))
	for _, src := range d.Article.Sources {
		if src.Index > 0 {
			sourceIndices[src.Index] = struct{}{}
		}
	}

	var missing []int
	for n := range sourceIndices {
		if _, ok := cited[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Sources %v are not cited in the content", missing))
	}

	var orphaned []int
	for n := range cited {
		if _, ok := sourceIndices[n]; !ok {
			orphaned = append(orphaned, n)
			d.Result.MarkOrphan(n)
		}
	}
	if len(orphaned) > 0 {
		sort.Ints(orphaned)
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Citations %v reference non-existent sources - will be removed", orphaned))
	}
}
