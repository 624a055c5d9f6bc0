package quality

import "fmt"

// Meta tag limits. The hard maxima are errors the fixer repairs by
// truncation; the minima are advisory only.
const (
	maxMetaTitleLen       = 55
	maxMetaDescriptionLen = 130
	minMetaTitleLen       = 30
	minMetaDescriptionLen = 50
)

// MetaTagCheck enforces SEO length limits on the meta title and meta
// description.
type MetaTagCheck struct{}

// Name returns the check identifier.
func (c *MetaTagCheck) Name() string { return "meta_tags" }

// Check records findings for out-of-range meta tag lengths. Lengths are
// measured in runes so multibyte text is not penalized.
func (c *MetaTagCheck) Check(d *CheckData) {
	title := []rune(d.Article.MetaTitle)
	desc := []rune(d.Article.MetaDescription)

	if len(title) > maxMetaTitleLen {
		preview := d.Article.MetaTitle
		if len(title) > 60 {
			preview = string(title[:60])
		}
		d.Result.AddError(c.Name(), fmt.Sprintf(
			"Meta title too long (%d chars, max %d): '%s...'",
			len(title), maxMetaTitleLen, preview))
	}

	if len(desc) > maxMetaDescriptionLen {
		preview := d.Article.MetaDescription
		if len(desc) > 135 {
			preview = string(desc[:135])
		}
		d.Result.AddError(c.Name(), fmt.Sprintf(
			"Meta description too long (%d chars, max %d): '%s...'",
			len(desc), maxMetaDescriptionLen, preview))
	}

	if len(title) < minMetaTitleLen {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Meta title might be too short (%d chars)", len(title)))
	}

	if len(desc) < minMetaDescriptionLen {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Meta description might be too short (%d chars)", len(desc)))
	}
}
