// Package model defines the core data structures used across blogsmith.
// It contains the article brief (input contract), the generated article and
// its fragments, quality findings, and the generation report that flows
// through the pipeline.
package model
