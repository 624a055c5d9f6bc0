package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// truncateAtWord shortens text to at most limit runes, cutting at the
// last word boundary and appending an ellipsis.
func truncateAtWord(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// orphanRule pairs a removal regex template with its replacement.
// Five rules cover the number standing alone and the four positions it
// can occupy inside a multi-citation group.
type orphanRule struct {
	pattern     string
	replacement string
}

var orphanRules = []orphanRule{
	{`\[%d\]`, ""},
	{`\[%d,\s*`, "["},
	{`,\s*%d\]`, "]"},
	{`\[%d\s+`, "["},
	{`\s+%d\]`, "]"},
}

// removeOrphan strips one orphaned citation number from text.
func removeOrphan(text string, n int) string {
	for _, rule := range orphanRules {
		re := regexp.MustCompile(fmt.Sprintf(rule.pattern, n))
		text = re.ReplaceAllString(text, rule.replacement)
	}
	return text
}

// ApplyFixes repairs what can be repaired mechanically: overlong meta
// tags are truncated at a word boundary, and orphaned citations found
// during validation are stripped from the intro and every section.
// The article is modified in place.
func ApplyFixes(article *model.Article, result *model.ValidationResult) {
	if len([]rune(article.MetaTitle)) > maxMetaTitleLen {
		article.MetaTitle = truncateAtWord(article.MetaTitle, maxMetaTitleLen-3)
	}

	if len([]rune(article.MetaDescription)) > maxMetaDescriptionLen {
		article.MetaDescription = truncateAtWord(article.MetaDescription, maxMetaDescriptionLen-3)
	}

	for n := range result.OrphanedCitations {
		article.Intro = removeOrphan(article.Intro, n)
		for i := range article.Sections {
			article.Sections[i].Content = removeOrphan(article.Sections[i].Content, n)
		}
	}
}
