package urlcheck

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

// titleSeparators are characters publishers use to append site names to
// page titles ("Article Title - Example Corp"). Overlong titles are cut at
// the first separator.
const titleSeparators = "-|•·:—"

// maxTitleLen is the length above which a title is cut at a separator.
const maxTitleLen = 120

// hardTitleLimit is the absolute title length cap after separator cutting.
const hardTitleLimit = 140

// ExtractTitle returns the content of the document's <title> element with
// entities decoded and whitespace collapsed, or empty string when the
// document has no title.
//
// Design decision: We use golang.org/x/net/html rather than regex because
// it correctly handles malformed HTML common on the web, and entity
// decoding comes for free from the tokenizer.
func ExtractTitle(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	title := findTitle(doc)
	title = strings.Join(strings.Fields(title), " ")
	return truncateTitle(title)
}

// findTitle walks the parse tree looking for the first <title> element.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// truncateTitle shortens overlong titles: first by cutting at the first
// separator character, then by a hard limit with an ellipsis.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleLen {
		if i := strings.IndexAny(title, titleSeparators); i > 0 {
			title = strings.TrimSpace(title[:i])
			runes = []rune(title)
		}
	}
	if len(runes) > hardTitleLimit {
		title = strings.TrimSpace(string(runes[:hardTitleLimit-3])) + "..."
	}
	return title
}

// Fallback title localization.
// The supported tags and format strings are index-aligned; the matcher
// resolves arbitrary BCP 47 input ("de-AT", "pt-BR") to the closest entry.
var (
	supportedLanguages = []language.Tag{
		language.English,
		language.German,
		language.French,
		language.Spanish,
		language.Portuguese,
	}

	fallbackFormats = []string{
		"Source: %s",
		"Quelle: %s",
		"Source : %s",
		"Fuente: %s",
		"Fonte: %s",
	}

	languageMatcher = language.NewMatcher(supportedLanguages)
)

// FallbackTitle returns a localized "Source: {host}" display title for
// pages with no usable <title>. Unknown languages fall back to English.
func FallbackTitle(lang, host string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	_, index, _ := languageMatcher.Match(tag)
	return fmt.Sprintf(fallbackFormats[index], host)
}
