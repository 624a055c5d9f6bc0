package quality

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Source list targets.
const (
	minSources          = 8
	maxSources          = 20
	minSourceTitleLen   = 5
	maxSourceTitleLen   = 200
	maxSourcesPerDomain = 3
)

// DuplicateSourceCheck flags sources whose normalized URLs collide and
// domains contributing more than their share of the source list.
// Duplicate URLs are errors; domain concentration is advisory.
type DuplicateSourceCheck struct{}

// Name returns the check identifier.
func (c *DuplicateSourceCheck) Name() string { return "duplicate_sources" }

// Check records duplicate and concentration findings.
func (c *DuplicateSourceCheck) Check(d *CheckData) {
	seen := make(map[string]bool, len(d.Article.Sources))
	domainCounts := make(map[string]int)

	for _, src := range d.Article.Sources {
		normalized := src.NormalizedURL()
		if seen[normalized] {
			d.Result.AddError(c.Name(), fmt.Sprintf("Duplicate source URL: %s", src.URL))
		}
		seen[normalized] = true

		if u, err := url.Parse(src.URL); err == nil {
			domain := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
			domainCounts[domain]++
		}
	}

	domains := make([]string, 0, len(domainCounts))
	for domain := range domainCounts {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	for _, domain := range domains {
		if count := domainCounts[domain]; count > maxSourcesPerDomain {
			d.Result.AddWarning(c.Name(), fmt.Sprintf(
				"Too many sources (%d) from same domain: %s", count, domain))
		}
	}
}

// SourceQualityCheck verifies the source list size and title quality.
// All findings are advisory.
type SourceQualityCheck struct{}

// Name returns the check identifier.
func (c *SourceQualityCheck) Name() string { return "source_quality" }

// Check records source list findings.
func (c *SourceQualityCheck) Check(d *CheckData) {
	n := len(d.Article.Sources)
	if n < minSources {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too few sources (%d, recommended minimum %d)", n, minSources))
	} else if n > maxSources {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too many sources (%d, maximum %d)", n, maxSources))
	}

	for _, src := range d.Article.Sources {
		titleLen := len([]rune(src.Title))
		if src.Title == "" || titleLen < minSourceTitleLen {
			d.Result.AddWarning(c.Name(), fmt.Sprintf(
				"Source %d has invalid title: '%s'", src.Index, src.Title))
		}
		if titleLen > maxSourceTitleLen {
			d.Result.AddWarning(c.Name(), fmt.Sprintf(
				"Source %d title too long (%d chars)", src.Index, titleLen))
		}
	}
}
