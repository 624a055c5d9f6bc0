// Package sources validates an article's numbered source list and hunts
// replacements for dead entries. Probes run in a bounded worker pool;
// replacement candidates come from a grounded web search and pass through
// the same validation as the originals.
package sources
