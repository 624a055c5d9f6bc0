package quality

import (
	"fmt"
	"regexp"
	"strings"
)

// anchorHrefRe extracts href values from anchor tags.
var anchorHrefRe = regexp.MustCompile(`<a\s+href="([^"]+)"[^>]*>`)

// minSectionLenForLinkWarning skips the missing-link warning for short
// sections, where forcing a link would read badly.
const minSectionLenForLinkWarning = 200

// InternalLinkCheck verifies internal links against the brief's link
// list and flags long sections with no internal link at all.
// All findings are advisory: link problems never block delivery.
type InternalLinkCheck struct{}

// Name returns the check identifier.
func (c *InternalLinkCheck) Name() string { return "internal_links" }

// Check records internal link findings.
func (c *InternalLinkCheck) Check(d *CheckData) {
	allHTML := d.Article.BodyText()

	provided := make(map[string]bool, len(d.Brief.Links))
	for _, link := range d.Brief.Links {
		provided[link] = true
	}

	for _, m := range anchorHrefRe.FindAllStringSubmatch(allHTML, -1) {
		link := m[1]
		if !strings.HasPrefix(link, "/") {
			continue
		}
		if len(provided) == 0 {
			continue
		}
		normalized := strings.TrimRight(link, "/")
		if provided[normalized] {
			continue
		}
		// Accept near matches where one path contains the other, e.g.
		// "/pricing" against "/pricing/enterprise".
		match := false
		for pl := range provided {
			if strings.Contains(pl, normalized) || strings.Contains(normalized, pl) {
				match = true
				break
			}
		}
		if !match {
			d.Result.AddWarning(c.Name(), fmt.Sprintf(
				"Internal link '%s' not in provided links list", link))
		}
	}

	for i, section := range d.Article.Sections {
		if len(section.Content) <= minSectionLenForLinkWarning {
			continue
		}
		hasInternal := false
		for _, m := range anchorHrefRe.FindAllStringSubmatch(section.Content, -1) {
			if strings.HasPrefix(m[1], "/") {
				hasInternal = true
				break
			}
		}
		if !hasInternal {
			title := section.Title
			if len(title) > 50 {
				title = title[:50]
			}
			d.Result.AddWarning(c.Name(), fmt.Sprintf(
				"Section %d ('%s...') has no internal links", i+1, title))
		}
	}
}
