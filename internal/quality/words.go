package quality

import (
	"fmt"

	"github.com/blogsmith/blogsmith/internal/model"
)

// Word count targets. All advisory: the article ships either way, the
// editor just gets told.
const (
	minTotalWords = 1200
	maxTotalWords = 1800
	minIntroWords = 80
	maxIntroWords = 120
)

// WordCountCheck verifies body and intro word counts against the
// editorial targets. HTML tags are stripped before counting.
type WordCountCheck struct{}

// Name returns the check identifier.
func (c *WordCountCheck) Name() string { return "word_count" }

// Check records word count findings.
func (c *WordCountCheck) Check(d *CheckData) {
	countWords := func(text string) int {
		return model.CountWords(model.StripHTML(text))
	}

	total := countWords(d.Article.Intro)
	for _, section := range d.Article.Sections {
		total += countWords(section.Content)
	}

	if total < minTotalWords {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Total word count (%d) is below recommended minimum (%d)", total, minTotalWords))
	} else if total > maxTotalWords {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Total word count (%d) exceeds recommended maximum (%d)", total, maxTotalWords))
	}

	introWords := countWords(d.Article.Intro)
	if introWords < minIntroWords {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Intro too short (%d words, recommended %d-%d)", introWords, minIntroWords, maxIntroWords))
	} else if introWords > maxIntroWords {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Intro too long (%d words, recommended %d-%d)", introWords, minIntroWords, maxIntroWords))
	}
}
