package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/blogsmith/blogsmith/internal/model"
	"github.com/blogsmith/blogsmith/internal/quality"
	"github.com/blogsmith/blogsmith/internal/report"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <article.json>",
		Short: "Run the quality gate on an existing article",
		Long: `Check runs the editorial quality battery on a previously generated
article without regenerating it. Automatic fixes are applied in memory
and the result of the post-fix validation decides the exit status.

The input is either a generation output file or a bare article JSON
object. The brief supplies the primary keyword and internal link list
for the content checks.

Examples:
  # Re-check a generated article
  blogsmith check article.json --brief brief.json

  # Write the repaired article back out
  blogsmith check article.json --brief brief.json -o fixed.json`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	cmd.Flags().StringP("brief", "b", "",
		"Brief JSON file or inline JSON (required)")
	cmd.Flags().StringP("output", "o", "",
		"Write the repaired article JSON to this path")
	if err := cmd.MarkFlagRequired("brief"); err != nil {
		panic(err)
	}

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	briefArg, err := cmd.Flags().GetString("brief")
	if err != nil {
		return err
	}
	brief, err := model.LoadBrief(briefArg)
	if err != nil {
		return fmt.Errorf("invalid brief: %w", err)
	}

	article, err := loadArticle(args[0])
	if err != nil {
		return err
	}

	checker := quality.NewChecker(quality.WithCheckerLogger(logger))

	runReport := model.NewGenerationReport(brief)
	runReport.Article = article
	runReport.PreFix = checker.Validate(article, brief)
	quality.ApplyFixes(article, runReport.PreFix)
	runReport.PostFix = checker.Validate(article, brief)

	writer := report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(getVerboseFlag(cmd)))
	if _, err := writer.Write(runReport); err != nil {
		return err
	}

	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outPath != "" {
		data, err := json.MarshalIndent(article, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, append(data, '\n'), 0600); err != nil {
			return fmt.Errorf("failed to write repaired article: %w", err)
		}
	}

	if errs := runReport.PostFix.Errors(); len(errs) > 0 {
		return &quality.GateError{Errors: errs}
	}
	return nil
}

// loadArticle reads an article from either a generation output file or
// a bare article JSON object.
func loadArticle(path string) (*model.Article, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided article path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read article: %w", err)
	}

	// Generation output wraps the article; try that shape first.
	var wrapped struct {
		Article *model.Article `json:"article"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Article != nil {
		return wrapped.Article, nil
	}

	var article model.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("failed to parse article JSON: %w", err)
	}
	if article.Headline == "" && len(article.Sections) == 0 {
		return nil, fmt.Errorf("no article found in %s", path)
	}
	return &article, nil
}
