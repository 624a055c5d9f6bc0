package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Brief validation errors.
// Sentinel errors let callers distinguish which required field is missing
// with errors.Is while keeping human-readable messages.
var (
	// ErrMissingKeyword is returned when the brief has no primary keyword.
	ErrMissingKeyword = errors.New("brief is missing primary_keyword")

	// ErrMissingCompanyURL is returned when the brief has no company URL.
	ErrMissingCompanyURL = errors.New("brief is missing company_url")

	// ErrMissingCompanyName is returned when the brief has no company name.
	ErrMissingCompanyName = errors.New("brief is missing company_name")

	// ErrMissingLocation is returned when the brief has no target location.
	ErrMissingLocation = errors.New("brief is missing company_location")
)

// Brief is the input contract for one article generation.
// It describes the topic, the company voice, and the exclusion rules the
// source validator enforces.
type Brief struct {
	// PrimaryKeyword is the topic the article must be written around.
	// Its presence in the generated text is a hard quality requirement.
	PrimaryKeyword string `json:"primary_keyword"`

	// CompanyURL is the company root URL. Sources on this host or any of
	// its subdomains are excluded ("sources must be external").
	CompanyURL string `json:"company_url"`

	// CompanyName is used for the article voice in the prompt.
	CompanyName string `json:"company_name"`

	// Language is the 2-letter output language code. Defaults to "en".
	Language string `json:"company_language,omitempty"`

	// Location is the target country or region for source selection.
	Location string `json:"company_location"`

	// Competitors lists competitor domains to exclude from sources.
	Competitors []string `json:"company_competitors,omitempty"`

	// CompanyInfo is free-form company background woven into the prompt.
	CompanyInfo map[string]string `json:"company_info,omitempty"`

	// Instruction is a free-text content generation instruction.
	Instruction string `json:"content_generation_instruction,omitempty"`

	// Links are internal link paths the article should weave in.
	Links []string `json:"links,omitempty"`

	// Scope optionally narrows the research focus.
	Scope string `json:"scope,omitempty"`
}

// Validate checks that all required fields are present and applies the
// language default. It returns the first missing-field error encountered.
func (b *Brief) Validate() error {
	if strings.TrimSpace(b.PrimaryKeyword) == "" {
		return ErrMissingKeyword
	}
	if strings.TrimSpace(b.CompanyURL) == "" {
		return ErrMissingCompanyURL
	}
	if strings.TrimSpace(b.CompanyName) == "" {
		return ErrMissingCompanyName
	}
	if strings.TrimSpace(b.Location) == "" {
		return ErrMissingLocation
	}
	if strings.TrimSpace(b.Language) == "" {
		b.Language = "en"
	}
	return nil
}

// LoadBrief reads a brief from a JSON file path or an inline JSON string.
// If input names an existing file the file is read, otherwise input itself
// is parsed as JSON. The returned brief is validated.
func LoadBrief(input string) (*Brief, error) {
	data := []byte(input)
	if _, err := os.Stat(input); err == nil {
		data, err = os.ReadFile(input) //nolint:gosec // User-provided brief path is intentional
		if err != nil {
			return nil, fmt.Errorf("failed to read brief: %w", err)
		}
	}

	var b Brief
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse brief JSON: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
