package config

// Profile holds company-level defaults applied to briefs that omit them.
// This lets an agency keep one .blogsmith file per workspace instead of
// repeating competitors and internal links in every brief.
type Profile struct {
	// Language is the default output language code (e.g., "en", "de").
	Language string `yaml:"language,omitempty"`

	// Competitors are competitor domains excluded from sources.
	Competitors []string `yaml:"competitors,omitempty"`

	// Links are internal link paths the article should weave in.
	Links []string `yaml:"links,omitempty"`

	// Instruction is a default content generation instruction.
	Instruction string `yaml:"instruction,omitempty"`
}

// File represents the structure of the .blogsmith configuration file.
type File struct {
	// Companies maps a company host (e.g., "example.com") to its profile.
	Companies map[string]Profile `yaml:"companies,omitempty"`

	// Defaults contains the profile applied to all companies unless
	// overridden in the company-specific entry.
	Defaults Profile `yaml:"defaults,omitempty"`
}

// GetProfile returns the profile for a company host, merging the
// company-specific entry over the defaults.
func (f *File) GetProfile(host string) Profile {
	result := f.Defaults

	if p, ok := f.Companies[host]; ok {
		if p.Language != "" {
			result.Language = p.Language
		}
		if len(p.Competitors) > 0 {
			result.Competitors = p.Competitors
		}
		if len(p.Links) > 0 {
			result.Links = p.Links
		}
		if p.Instruction != "" {
			result.Instruction = p.Instruction
		}
	}

	return result
}
