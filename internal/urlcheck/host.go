package urlcheck

import (
	"net/url"
	"strings"
)

// forbiddenHosts are grounding-service internal redirect hosts.
// The search grounding layer emits citation URLs through these hosts; they
// must never appear as article sources.
var forbiddenHosts = map[string]bool{
	"vertexaisearch.cloud.google.com": true,
	"cloud.google.com":                true,
}

// IsForbiddenHost reports whether the normalized host is a grounding-service
// internal host.
func IsForbiddenHost(host string) bool {
	return forbiddenHosts[host]
}

// NormalizeHost extracts the registrable hostname from a URL or bare
// domain: case-folded, leading dots stripped, leading "www." removed.
// Returns empty string when no hostname can be extracted.
func NormalizeHost(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimLeft(host, ".")
	host = strings.TrimPrefix(host, "www.")
	return host
}

// SameOrSubdomain reports whether host equals root or is a subdomain of it.
// Both arguments are expected to already be normalized; the comparison is
// case-insensitive regardless. This single predicate backs all three
// exclusion rules (company, competitors, forbidden hosts).
func SameOrSubdomain(host, root string) bool {
	if host == "" || root == "" {
		return false
	}
	host = strings.ToLower(host)
	root = strings.TrimLeft(strings.ToLower(root), ".")
	return host == root || strings.HasSuffix(host, "."+root)
}

// isTrackingParam reports whether a query key is a tracking parameter.
func isTrackingParam(key string) bool {
	k := strings.ToLower(key)
	return strings.HasPrefix(k, "utm_") || k == "gclid" || k == "fbclid"
}

// StripTrackingParams removes tracking query parameters (utm_*, gclid,
// fbclid) from a URL while preserving the order of the remaining
// parameters. Malformed URLs are returned unchanged.
func StripTrackingParams(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.RawQuery == "" {
		return raw
	}

	// url.Values would lose parameter order, so filter pairs manually.
	kept := make([]string, 0)
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key = pair[:i]
		}
		if isTrackingParam(key) {
			continue
		}
		kept = append(kept, pair)
	}

	u.RawQuery = strings.Join(kept, "&")
	return u.String()
}
