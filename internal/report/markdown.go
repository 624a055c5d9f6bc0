package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/blogsmith/blogsmith/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for editorial review and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.GenerationReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeQualitySummary(md, report)
	w.writeFindings(md, report)
	w.writeSources(md, report)
	w.writeSteps(md, report)

	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by blogsmith*")

	return len(md.String()), md.Build()
}

// writeHeader writes the run summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.GenerationReport) {
	md.H1("Article Generation Report")
	md.PlainText("")

	headline := "-"
	if report.Article != nil && report.Article.Headline != "" {
		headline = report.Article.Headline
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Primary Keyword", "`" + report.Brief.PrimaryKeyword + "`"},
			{"Company", report.Brief.CompanyName},
			{"Language", report.Brief.Language},
			{"Headline", headline},
			{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.String()},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on report state.
func (w *MarkdownWriter) statusText(report *model.GenerationReport) string {
	if report.Error != "" {
		return "❌ Failed - " + report.Error
	}
	if !report.Succeeded() {
		return "❌ Quality gate failed"
	}
	return "✅ Complete"
}

// writeQualitySummary writes finding counts for both validation passes.
func (w *MarkdownWriter) writeQualitySummary(md *markdown.Markdown, report *model.GenerationReport) {
	md.H2("Quality Summary")
	md.PlainText("")

	if report.PreFix == nil {
		md.PlainText("Quality validation did not run.")
		md.PlainText("")
		return
	}

	rows := [][]string{
		{"Before fixes", strconv.Itoa(len(report.PreFix.Errors())), strconv.Itoa(len(report.PreFix.Warnings()))},
	}
	if report.PostFix != nil {
		rows = append(rows, []string{
			"After fixes", strconv.Itoa(len(report.PostFix.Errors())), strconv.Itoa(len(report.PostFix.Warnings())),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Pass", "Errors", "Warnings"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case report.PostFix != nil && !report.PostFix.IsValid():
		md.Cautionf("%d error(s) remain after automatic fixes. The article was not delivered.",
			len(report.PostFix.Errors()))
	case report.PreFix != nil && !report.PreFix.IsValid():
		md.Warningf("%d error(s) were repaired automatically.", len(report.PreFix.Errors()))
	default:
		md.Tip("The article passed all quality checks without repairs.")
	}
	md.PlainText("")
}

// writeFindings writes the post-fix findings grouped by severity.
func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.GenerationReport) {
	result := report.PostFix
	if result == nil {
		result = report.PreFix
	}
	if result == nil || len(result.Findings) == 0 {
		return
	}

	md.H2("Findings")
	md.PlainText("")

	rows := make([][]string, 0, len(result.Findings))
	for _, f := range result.Findings {
		rows = append(rows, []string{f.SeverityText, f.Check, truncateString(f.Message, 100)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Check", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSources writes the validated source list.
func (w *MarkdownWriter) writeSources(md *markdown.Markdown, report *model.GenerationReport) {
	if report.Article == nil {
		return
	}

	md.H2("Sources")
	md.PlainText("")

	if len(report.Article.Sources) == 0 {
		md.PlainText("No sources survived validation.")
		md.PlainText("")
		return
	}

	items := make([]string, 0, len(report.Article.Sources))
	for _, src := range report.Article.Sources {
		items = append(items, "["+strconv.Itoa(src.Index)+"] "+src.Title+" - "+src.URL)
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeSteps writes the executed pipeline steps.
func (w *MarkdownWriter) writeSteps(md *markdown.Markdown, report *model.GenerationReport) {
	if len(report.StepsPerformed) == 0 {
		return
	}

	md.H2("Pipeline Steps")
	md.PlainText("")
	md.OrderedList(report.StepsPerformed...)
	md.PlainText("")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
