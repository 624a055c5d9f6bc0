package config

import (
	"errors"
	"testing"
	"time"
)

// TestNewConfig tests that defaults are populated.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.ContentModel != DefaultContentModel {
		t.Errorf("ContentModel = %q, want %q", cfg.ContentModel, DefaultContentModel)
	}
	if cfg.ProbeTimeout != 8*time.Second {
		t.Errorf("ProbeTimeout = %v, want 8s", cfg.ProbeTimeout)
	}
	if cfg.ProbeWorkers != 10 {
		t.Errorf("ProbeWorkers = %d, want 10", cfg.ProbeWorkers)
	}
	if cfg.SearchWorkers != 3 {
		t.Errorf("SearchWorkers = %d, want 3", cfg.SearchWorkers)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatJSON)
	}
	if cfg.CacheDir == "" {
		t.Error("CacheDir is empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

// TestConfigValidate tests configuration consistency checks.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "zero probe timeout",
			mutate:  func(c *Config) { c.ProbeTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative generate timeout",
			mutate:  func(c *Config) { c.GenerateTimeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero probe workers",
			mutate:  func(c *Config) { c.ProbeWorkers = 0 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "zero search workers",
			mutate:  func(c *Config) { c.SearchWorkers = 0 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "zero max sources",
			mutate:  func(c *Config) { c.MaxSources = 0 },
			wantErr: ErrInvalidMaxSources,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("html format is accepted", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Format = FormatHTML
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
