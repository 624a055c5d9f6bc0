// Package urlcheck validates candidate source URLs for generated articles.
// It resolves redirects, strips tracking parameters, enforces host
// exclusion rules (company, competitors, grounding-service internals),
// probes liveness, detects disguised error pages, and extracts a display
// title for the literature block.
package urlcheck
