package model

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Section is one logical part of the article body.
// Ordering is meaningful: sections are read sequentially.
type Section struct {
	// Title is the section heading. Empty titles are a quality error
	// after validation.
	Title string `json:"title"`

	// Content is the HTML body of the section.
	Content string `json:"content"`
}

// FAQItem is a frequently-asked-question pair shown below the article.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PAAItem is a "People Also Ask" pair mimicking search-engine related-query
// boxes. Structurally identical to FAQItem but rendered separately.
type PAAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Source is a numbered reference cited from the article body as [index].
type Source struct {
	// URL is the absolute, externally reachable source URL.
	URL string `json:"url"`

	// Title is the display string shown in the literature block.
	Title string `json:"title"`

	// Index is the 1-based citation number. Indices of surviving sources
	// are never renumbered, so gaps may exist after validation.
	Index int `json:"index"`
}

// NormalizedURL returns the URL lowered and with a trailing slash removed.
// Two sources are duplicates when their normalized URLs are equal.
func (s Source) NormalizedURL() string {
	return strings.TrimRight(strings.ToLower(s.URL), "/")
}

// Article is a generated blog article after parsing.
// Until the quality repair pass completes, every textual field is raw model
// output and may violate any editorial rule.
type Article struct {
	Headline        string    `json:"headline"`
	Subtitle        string    `json:"subtitle,omitempty"`
	Teaser          string    `json:"teaser"`
	Intro           string    `json:"intro"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	Sections        []Section `json:"sections"`
	KeyTakeaways    []string  `json:"key_takeaways,omitempty"`
	FAQ             []FAQItem `json:"faq,omitempty"`
	PAA             []PAAItem `json:"paa,omitempty"`
	Sources         []Source  `json:"sources,omitempty"`
	SearchQueries   []string  `json:"search_queries,omitempty"`

	// ReadTime is the estimated reading time in minutes.
	ReadTime int `json:"read_time"`

	// Date is the publication date in DD.MM.YYYY format.
	Date string `json:"date"`

	// Literature is the rendered HTML block of numbered source citations.
	Literature string `json:"literature,omitempty"`

	// HTML is the full standalone HTML rendering, if requested.
	HTML string `json:"html,omitempty"`
}

// BodyText returns the intro and all section contents joined with spaces.
// Most quality checks operate on this combined view.
func (a *Article) BodyText() string {
	parts := make([]string, 0, len(a.Sections)+1)
	parts = append(parts, a.Intro)
	for _, s := range a.Sections {
		parts = append(parts, s.Content)
	}
	return strings.Join(parts, " ")
}

// htmlTagRe matches HTML tags for plain-text extraction.
var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags from text, leaving the plain text content.
func StripHTML(text string) string {
	return htmlTagRe.ReplaceAllString(text, "")
}

// CountWords counts whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// readingWordsPerMinute is the assumed reading speed for the read-time
// estimate shown on published articles.
const readingWordsPerMinute = 200

// EstimateReadTime returns the reading time in whole minutes for the given
// word count, rounding up and never returning less than one minute.
func EstimateReadTime(wordCount int) int {
	minutes := (wordCount + readingWordsPerMinute - 1) / readingWordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// RandomDate returns a date within the last daysBack days formatted as
// DD.MM.YYYY. Published articles carry a recent but not necessarily
// current date.
func RandomDate(daysBack int) string {
	if daysBack < 0 {
		daysBack = 0
	}
	d := time.Now().AddDate(0, 0, -rand.Intn(daysBack+1))
	return d.Format("02.01.2006")
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts text to a URL-friendly slug.
// Returns "article" when nothing survives the conversion.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = slugRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "article"
	}
	return slug
}
