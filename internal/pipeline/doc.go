// Package pipeline orchestrates one article generation run as a
// sequence of steps: generate, parse, validate sources, gate on
// quality, render. Each step reads and extends a shared report; a batch
// processor runs independent briefs through separate pipelines
// concurrently.
package pipeline
