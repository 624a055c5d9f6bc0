// Package report writes generation run reports in multiple formats.
// JSON serves tool integration, Markdown serves editorial review, and
// the simple writer serves terminal output.
package report
