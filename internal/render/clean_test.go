package render

import "testing"

// TestCleanHTML tests model output normalization.
func TestCleanHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "markdown bold becomes strong",
			in:   "<p>This is **important** text.</p>",
			want: "<p>This is <strong>important</strong> text.</p>",
		},
		{
			name: "markdown emphasis becomes em",
			in:   "<p>This is *subtle* text.</p>",
			want: "<p>This is <em>subtle</em> text.</p>",
		},
		{
			name: "asterisks inside tags untouched",
			in:   `<p>See <a href="https://example.com/a*b*c">link</a> text.</p>`,
			want: `<p>See <a href="https://example.com/a*b*c">link</a> text.</p>`,
		},
		{
			name: "broken href repaired",
			in:   `<p><a href="https://example.com/long path">x</a></p>`,
			want: `<p><a href="https://example.com/longpath">x</a></p>`,
		},
		{
			name: "bare text gets a paragraph wrapper",
			in:   "Just plain text.",
			want: "<p>Just plain text.</p>",
		},
		{
			name: "sentence-per-paragraph output merged",
			in:   "<p>First sentence.</p>\n<p>Second sentence.</p>",
			want: "<p>First sentence. Second sentence.</p>",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  <p>Tidy.</p>  ",
			want: "<p>Tidy.</p>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CleanHTML(tt.in); got != tt.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestSanitizeCitations tests citation stripping for citation-free fields.
func TestSanitizeCitations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single citation removed",
			in:   "A claim [1] here.",
			want: "A claim  here.",
		},
		{
			name: "citation group removed",
			in:   "A claim [1, 2] here.",
			want: "A claim  here.",
		},
		{
			name: "space separated group removed",
			in:   "A claim [3 4] here.",
			want: "A claim  here.",
		},
		{
			name: "empty brackets removed",
			in:   "Leftover [ ] brackets.",
			want: "Leftover  brackets.",
		},
		{
			name: "trailing citation trims clean",
			in:   "Teaser text [7]",
			want: "Teaser text",
		},
		{
			name: "plain text unchanged",
			in:   "No citations at all.",
			want: "No citations at all.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeCitations(tt.in); got != tt.want {
				t.Errorf("SanitizeCitations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
