package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// Slot counts in the model output contract.
const (
	maxSections  = 9
	maxFAQItems  = 6
	maxPAAItems  = 4
	maxTakeaways = 3
)

var (
	// jsonObjectRe finds the outermost JSON object in free-form text.
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

	// fencedJSONRe finds a JSON object inside a markdown code fence, for
	// models that wrap their output despite instructions.
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

	// sourceLineRe matches one source list line: [1]: https://... – note.
	// Both en dash and hyphen separate URL and note.
	sourceLineRe = regexp.MustCompile(`^\[(\d+)\]:\s*(https?://\S+)\s*[–-]\s*(.+)$`)

	// queryLineRe matches one search query line: Q1: phrase.
	queryLineRe = regexp.MustCompile(`^Q\d+:\s*(.+)$`)
)

// ExtractPayload locates and decodes the JSON object in raw model output.
// It tries the bare outermost object first, then a fenced code block.
// Returns an empty map when no parseable object exists; the caller decides
// whether that is fatal.
func ExtractPayload(text string) map[string]any {
	if m := jsonObjectRe.FindString(text); m != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(m), &payload); err == nil {
			return payload
		}
	}

	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		var payload map[string]any
		if err := json.Unmarshal([]byte(m[1]), &payload); err == nil {
			return payload
		}
	}

	return map[string]any{}
}

// stringField returns the trimmed string value for a payload key.
// Non-string values count as absent.
func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Build assembles an article from a decoded payload. Slot keys are read
// in order; blank slots are skipped without disturbing the order of the
// filled ones.
func Build(payload map[string]any) *model.Article {
	a := &model.Article{
		Headline:        stringField(payload, "Headline"),
		Subtitle:        stringField(payload, "Subtitle"),
		Teaser:          stringField(payload, "Teaser"),
		Intro:           stringField(payload, "Intro"),
		MetaTitle:       stringField(payload, "Meta Title"),
		MetaDescription: stringField(payload, "Meta Description"),
	}

	for i := 1; i <= maxSections; i++ {
		title := stringField(payload, fmt.Sprintf("section_%02d_title", i))
		content := stringField(payload, fmt.Sprintf("section_%02d_content", i))
		if title != "" || content != "" {
			a.Sections = append(a.Sections, model.Section{Title: title, Content: content})
		}
	}

	for i := 1; i <= maxFAQItems; i++ {
		question := stringField(payload, fmt.Sprintf("faq_%02d_question", i))
		answer := stringField(payload, fmt.Sprintf("faq_%02d_answer", i))
		if question != "" && answer != "" {
			a.FAQ = append(a.FAQ, model.FAQItem{Question: question, Answer: answer})
		}
	}

	for i := 1; i <= maxPAAItems; i++ {
		question := stringField(payload, fmt.Sprintf("paa_%02d_question", i))
		answer := stringField(payload, fmt.Sprintf("paa_%02d_answer", i))
		if question != "" && answer != "" {
			a.PAA = append(a.PAA, model.PAAItem{Question: question, Answer: answer})
		}
	}

	for i := 1; i <= maxTakeaways; i++ {
		if v := stringField(payload, fmt.Sprintf("key_takeaway_%02d", i)); v != "" {
			a.KeyTakeaways = append(a.KeyTakeaways, v)
		}
	}

	a.SearchQueries = SearchQueries(payload)

	return a
}

// SourcesText returns the raw multi-line source list from the payload.
func SourcesText(payload map[string]any) string {
	return stringField(payload, "Sources")
}

// ParseSourceLines parses the numbered source list into entries. Lines
// that do not match the expected format are skipped.
func ParseSourceLines(text string) []model.Source {
	var sources []model.Source
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := sourceLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		sources = append(sources, model.Source{
			Index: index,
			URL:   m[2],
			Title: strings.TrimSpace(m[3]),
		})
	}
	return sources
}

// SearchQueries extracts the suggested search queries from the payload's
// "Search Queries" field, one "Q1: phrase" line per query.
func SearchQueries(payload map[string]any) []string {
	text := stringField(payload, "Search Queries")
	if text == "" {
		return nil
	}

	var queries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if m := queryLineRe.FindStringSubmatch(line); m != nil {
			queries = append(queries, strings.TrimSpace(m[1]))
		}
	}
	return queries
}

// RawWordCount sums the word counts of every string value in the payload.
// The read-time estimate uses this raw total rather than the assembled
// article so blank slots and list fields still count.
func RawWordCount(payload map[string]any) int {
	total := 0
	for _, v := range payload {
		if s, ok := v.(string); ok {
			total += model.CountWords(s)
		}
	}
	return total
}
