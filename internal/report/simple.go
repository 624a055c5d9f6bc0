package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no findings are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.GenerationReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeFindings(&sb, report)
	w.writeSources(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.GenerationReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    ARTICLE GENERATION REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Primary Keyword: %s\n", report.Brief.PrimaryKeyword))
	sb.WriteString(fmt.Sprintf("Company:         %s\n", report.Brief.CompanyName))
	sb.WriteString(fmt.Sprintf("Generated At:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:        %s\n", report.Duration))

	switch {
	case report.Error != "":
		sb.WriteString(fmt.Sprintf("Status:          ERROR - %s\n", report.Error))
	case !report.Succeeded():
		sb.WriteString("Status:          QUALITY GATE FAILED\n")
	default:
		sb.WriteString("Status:          Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the finding count summary for both passes.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.GenerationReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("QUALITY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.PreFix == nil {
		sb.WriteString("  Quality validation did not run\n\n")
		return
	}

	sb.WriteString(fmt.Sprintf("  BEFORE FIXES: %d errors, %d warnings\n",
		len(report.PreFix.Errors()), len(report.PreFix.Warnings())))
	if report.PostFix != nil {
		sb.WriteString(fmt.Sprintf("  AFTER FIXES:  %d errors, %d warnings\n",
			len(report.PostFix.Errors()), len(report.PostFix.Warnings())))
	}
	sb.WriteString("\n")
}

// writeFindings writes the post-fix findings, errors first.
func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.GenerationReport) {
	result := report.PostFix
	if result == nil {
		result = report.PreFix
	}
	if result == nil || (len(result.Findings) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FINDINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(result.Findings) == 0 {
		sb.WriteString("  No findings\n\n")
		return
	}

	for _, severity := range []model.Severity{model.SeverityError, model.SeverityWarning} {
		for _, f := range result.Findings {
			if f.Severity != severity {
				continue
			}
			indicator := "!"
			if severity == model.SeverityWarning {
				indicator = "-"
			}
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", indicator, f.Message))
			if w.verbose {
				sb.WriteString(fmt.Sprintf("      Check: %s\n", f.Check))
			}
		}
	}
	sb.WriteString("\n")
}

// writeSources writes the validated source list.
func (w *SimpleWriter) writeSources(sb *strings.Builder, report *model.GenerationReport) {
	if report.Article == nil {
		return
	}
	if len(report.Article.Sources) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SOURCES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Article.Sources) == 0 {
		sb.WriteString("  No sources survived validation\n")
	} else {
		for _, src := range report.Article.Sources {
			sb.WriteString(fmt.Sprintf("  [%d] %s\n", src.Index, src.URL))
			if w.verbose {
				sb.WriteString(fmt.Sprintf("      Title: %s\n", src.Title))
			}
		}
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by blogsmith\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
