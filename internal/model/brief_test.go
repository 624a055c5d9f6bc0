package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// validBrief returns a minimal brief that passes validation.
func validBrief() *Brief {
	return &Brief{
		PrimaryKeyword: "cloud cost optimization",
		CompanyURL:     "https://example.com",
		CompanyName:    "Example Corp",
		Location:       "United States",
	}
}

// TestBriefValidate tests required-field validation and defaults.
func TestBriefValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete brief", func(t *testing.T) {
		t.Parallel()

		b := validBrief()
		if err := b.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("defaults language to en", func(t *testing.T) {
		t.Parallel()

		b := validBrief()
		if err := b.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Language != "en" {
			t.Errorf("Language = %q, want %q", b.Language, "en")
		}
	})

	t.Run("keeps an explicit language", func(t *testing.T) {
		t.Parallel()

		b := validBrief()
		b.Language = "de"
		if err := b.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Language != "de" {
			t.Errorf("Language = %q, want %q", b.Language, "de")
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Brief)
		wantErr error
	}{
		{
			name:    "missing primary keyword",
			mutate:  func(b *Brief) { b.PrimaryKeyword = "" },
			wantErr: ErrMissingKeyword,
		},
		{
			name:    "whitespace-only keyword",
			mutate:  func(b *Brief) { b.PrimaryKeyword = "  \t" },
			wantErr: ErrMissingKeyword,
		},
		{
			name:    "missing company URL",
			mutate:  func(b *Brief) { b.CompanyURL = "" },
			wantErr: ErrMissingCompanyURL,
		},
		{
			name:    "missing company name",
			mutate:  func(b *Brief) { b.CompanyName = "" },
			wantErr: ErrMissingCompanyName,
		},
		{
			name:    "missing location",
			mutate:  func(b *Brief) { b.Location = "" },
			wantErr: ErrMissingLocation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := validBrief()
			tt.mutate(b)
			if err := b.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadBrief tests loading from files and inline JSON.
func TestLoadBrief(t *testing.T) {
	t.Parallel()

	t.Run("loads from a file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "brief.json")
		content := `{
			"primary_keyword": "test keyword",
			"company_url": "https://example.com",
			"company_name": "Example",
			"company_location": "Germany",
			"company_language": "de"
		}`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		b, err := LoadBrief(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.PrimaryKeyword != "test keyword" {
			t.Errorf("PrimaryKeyword = %q, want %q", b.PrimaryKeyword, "test keyword")
		}
		if b.Language != "de" {
			t.Errorf("Language = %q, want %q", b.Language, "de")
		}
	})

	t.Run("loads inline JSON", func(t *testing.T) {
		t.Parallel()

		inline := `{"primary_keyword":"k","company_url":"https://e.com","company_name":"E","company_location":"US"}`
		b, err := LoadBrief(inline)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.CompanyName != "E" {
			t.Errorf("CompanyName = %q, want %q", b.CompanyName, "E")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadBrief("{not json"); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("rejects an invalid brief", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadBrief(`{"primary_keyword":"k"}`); !errors.Is(err, ErrMissingCompanyURL) {
			t.Errorf("LoadBrief() = %v, want %v", err, ErrMissingCompanyURL)
		}
	})
}
