package urlcheck

import (
	"regexp"
	"strings"
)

// errorPathPatterns are URL path fragments that indicate a soft-404 page
// reached through a redirect. Matching is case-insensitive on the full URL.
var errorPathPatterns = []string{
	"/notfound",
	"/not-found",
	"/404",
	"/error",
	"/page-not-found",
	"notfound.aspx",
	"404.aspx",
	"error.aspx",
	"page-not-found.aspx",
}

// errorBodyPhrases are localized "not found" phrases. A page body containing
// two or more distinct phrases is treated as a disguised error page even
// when it answers 200. Covers English, German, French, and Spanish.
var errorBodyPhrases = []string{
	"page not found",
	"404",
	"not found",
	"error 404",
	"die seite wurde nicht gefunden",
	"seite nicht gefunden",
	"page introuvable",
	"página no encontrada",
	"nicht gefunden",
}

// errorTitlePhrases flag an error page when found in the document title.
var errorTitlePhrases = []string{
	"not found",
	"404",
	"error",
	"nicht gefunden",
	"page not found",
}

// errorStatusCodes are status codes that always mean a dead source.
var errorStatusCodes = map[int]bool{
	404: true,
	410: true,
	500: true,
	503: true,
}

var titleTagRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// HasErrorPath reports whether the URL path suggests an error page.
func HasErrorPath(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range errorPathPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// IsErrorPage reports whether a fetched page is a disguised error page.
// It combines four signals: the final URL path, localized not-found phrase
// density in the body, the document title, and the status code.
func IsErrorPage(finalURL string, statusCode int, body string) bool {
	if HasErrorPath(finalURL) {
		return true
	}

	if errorStatusCodes[statusCode] {
		return true
	}

	if body != "" {
		bodyLower := strings.ToLower(body)

		// One phrase alone is common on legitimate pages ("404 error
		// handling best practices"); two distinct phrases is the signal.
		phraseCount := 0
		for _, phrase := range errorBodyPhrases {
			if strings.Contains(bodyLower, phrase) {
				phraseCount++
			}
		}
		if phraseCount >= 2 {
			return true
		}

		if m := titleTagRe.FindStringSubmatch(body); m != nil {
			titleLower := strings.ToLower(m[1])
			for _, phrase := range errorTitlePhrases {
				if strings.Contains(titleLower, phrase) {
					return true
				}
			}
		}
	}

	return false
}
