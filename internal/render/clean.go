package render

import (
	"regexp"
	"strings"
)

var (
	// markdownBoldRe converts leftover markdown bold to <strong>.
	markdownBoldRe = regexp.MustCompile(`\*\*([^*]*)\*\*`)

	// markdownEmphasisRe converts single-asterisk emphasis to <em>.
	// Applied only to text outside HTML tags; see cleanEmphasis.
	markdownEmphasisRe = regexp.MustCompile(`\*([^*<>]+?)\*`)

	// brokenHrefRe repairs href values split by whitespace.
	brokenHrefRe = regexp.MustCompile(`href="([^"]*?)\s+([^"]*)"`)

	// adjacentParagraphsRe merges back-to-back paragraph breaks the model
	// tends to emit after every sentence.
	adjacentParagraphsRe = regexp.MustCompile(`</p>\s*<p>`)

	// numberedCitationRe matches citation groups like [1], [2 3], [9,10].
	numberedCitationRe = regexp.MustCompile(`\[\s*\d+(?:[\s,]+\d+)*\s*\]`)

	// emptyBracketsRe matches leftover empty brackets after removal.
	emptyBracketsRe = regexp.MustCompile(`\[\s*\]`)
)

// CleanHTML normalizes one HTML fragment from the model: markdown bold
// and emphasis become tags, split hrefs are repaired, bare text gets a
// paragraph wrapper, and sentence-per-paragraph output is merged.
func CleanHTML(text string) string {
	if text == "" {
		return text
	}

	text = markdownBoldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = cleanEmphasis(text)
	text = brokenHrefRe.ReplaceAllString(text, `href="$1$2"`)

	text = strings.TrimSpace(text)
	if text != "" && !strings.HasPrefix(text, "<") {
		text = "<p>" + text + "</p>"
	}

	text = adjacentParagraphsRe.ReplaceAllString(text, " ")

	return text
}

// cleanEmphasis converts *text* emphasis to <em> tags in the text
// between HTML tags. Splitting at tag boundaries keeps asterisks inside
// attribute values and URLs untouched.
func cleanEmphasis(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	rest := text
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			sb.WriteString(markdownEmphasisRe.ReplaceAllString(rest, "<em>$1</em>"))
			break
		}
		sb.WriteString(markdownEmphasisRe.ReplaceAllString(rest[:open], "<em>$1</em>"))

		closing := strings.IndexByte(rest[open:], '>')
		if closing < 0 {
			sb.WriteString(rest[open:])
			break
		}
		sb.WriteString(rest[open : open+closing+1])
		rest = rest[open+closing+1:]
	}

	return sb.String()
}

// SanitizeCitations removes citation brackets and any empty brackets
// they leave behind. Used for fields that render without a literature
// block, like the teaser.
func SanitizeCitations(text string) string {
	text = numberedCitationRe.ReplaceAllString(text, "")
	text = emptyBracketsRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
