package urlcheck

import "testing"

// TestNormalizeHost tests host extraction and normalization.
func TestNormalizeHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "full URL", in: "https://www.Example.com/path?q=1", want: "example.com"},
		{name: "bare domain", in: "example.com", want: "example.com"},
		{name: "www prefix stripped", in: "www.example.com", want: "example.com"},
		{name: "leading dot stripped", in: ".example.com", want: "example.com"},
		{name: "subdomain preserved", in: "https://blog.example.com", want: "blog.example.com"},
		{name: "port stripped", in: "https://example.com:8443/page", want: "example.com"},
		{name: "empty input", in: "", want: ""},
		{name: "whitespace only", in: "  ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeHost(tt.in); got != tt.want {
				t.Errorf("NormalizeHost(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestSameOrSubdomain tests the exclusion predicate.
func TestSameOrSubdomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		host string
		root string
		want bool
	}{
		{name: "exact match", host: "example.com", root: "example.com", want: true},
		{name: "subdomain", host: "blog.example.com", root: "example.com", want: true},
		{name: "deep subdomain", host: "a.b.example.com", root: "example.com", want: true},
		{name: "unrelated host", host: "other.io", root: "example.com", want: false},
		{name: "suffix but not subdomain", host: "notexample.com", root: "example.com", want: false},
		{name: "reversed relation", host: "example.com", root: "blog.example.com", want: false},
		{name: "case insensitive", host: "Blog.EXAMPLE.com", root: "example.COM", want: true},
		{name: "empty host", host: "", root: "example.com", want: false},
		{name: "empty root", host: "example.com", root: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SameOrSubdomain(tt.host, tt.root); got != tt.want {
				t.Errorf("SameOrSubdomain(%q, %q) = %v, want %v", tt.host, tt.root, got, tt.want)
			}
		})
	}
}

// TestIsForbiddenHost tests grounding-host exclusion.
func TestIsForbiddenHost(t *testing.T) {
	t.Parallel()

	if !IsForbiddenHost("vertexaisearch.cloud.google.com") {
		t.Error("expected grounding redirect host to be forbidden")
	}
	if IsForbiddenHost("example.com") {
		t.Error("expected ordinary host to be allowed")
	}
}

// TestStripTrackingParams tests tracking parameter removal.
func TestStripTrackingParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "removes utm parameters",
			in:   "https://example.com/page?utm_source=x&utm_medium=y",
			want: "https://example.com/page",
		},
		{
			name: "removes gclid and fbclid",
			in:   "https://example.com/page?gclid=abc&fbclid=def",
			want: "https://example.com/page",
		},
		{
			name: "keeps real parameters in order",
			in:   "https://example.com/search?b=2&utm_campaign=x&a=1",
			want: "https://example.com/search?b=2&a=1",
		},
		{
			name: "no query untouched",
			in:   "https://example.com/page",
			want: "https://example.com/page",
		},
		{
			name: "mixed case utm removed",
			in:   "https://example.com/?UTM_Source=x&q=go",
			want: "https://example.com/?q=go",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripTrackingParams(tt.in); got != tt.want {
				t.Errorf("StripTrackingParams(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
