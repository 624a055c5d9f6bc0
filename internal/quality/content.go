package quality

import (
	"fmt"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// Auxiliary content targets.
const (
	minKeyTakeaways = 2
	minFAQItems     = 3
	minPAAItems     = 2

	// minKeywordCount is the keyword occurrence count below which the
	// article gets a warning. Zero occurrences is an error.
	minKeywordCount = 3
)

// ContentQualityCheck verifies the auxiliary content blocks and the
// presence of the primary keyword. A keyword that never appears is the
// one hard failure here: the article is off-topic by definition.
type ContentQualityCheck struct{}

// Name returns the check identifier.
func (c *ContentQualityCheck) Name() string { return "content_quality" }

// Check records content quality findings.
func (c *ContentQualityCheck) Check(d *CheckData) {
	if n := len(d.Article.KeyTakeaways); n < minKeyTakeaways {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too few key takeaways (%d, recommended 2-3)", n))
	}

	if n := len(d.Article.FAQ); n < minFAQItems {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too few FAQs (%d, recommended 3-6)", n))
	}

	if n := len(d.Article.PAA); n < minPAAItems {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too few PAA items (%d, recommended 2-4)", n))
	}

	keyword := strings.ToLower(strings.TrimSpace(d.Brief.PrimaryKeyword))
	if keyword == "" {
		return
	}

	allText := strings.ToLower(d.Article.Headline + " " + d.Article.BodyText())
	plainText := model.StripHTML(allText)
	count := strings.Count(plainText, keyword)

	if count == 0 {
		d.Result.AddError(c.Name(), fmt.Sprintf(
			"Primary keyword '%s' not found in content", d.Brief.PrimaryKeyword))
	} else if count < minKeywordCount {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Primary keyword '%s' appears only %d times", d.Brief.PrimaryKeyword, count))
	}
}
