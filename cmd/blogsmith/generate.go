package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blogsmith/blogsmith/internal/config"
	"github.com/blogsmith/blogsmith/internal/database"
	"github.com/blogsmith/blogsmith/internal/llm"
	"github.com/blogsmith/blogsmith/internal/log"
	"github.com/blogsmith/blogsmith/internal/model"
	"github.com/blogsmith/blogsmith/internal/pipeline"
	"github.com/blogsmith/blogsmith/internal/quality"
	"github.com/blogsmith/blogsmith/internal/report"
	"github.com/blogsmith/blogsmith/internal/sources"
	"github.com/blogsmith/blogsmith/internal/urlcheck"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [brief...]",
		Short: "Generate one or more blog articles from briefs",
		Long: `Generate produces a complete blog article per brief.

Each argument is either a path to a brief JSON file or an inline JSON
string. The run generates the article, probes every cited source URL,
replaces dead sources where possible, repairs editorial violations, and
fails if fatal quality errors remain after repairs.

Examples:
  # Generate from a brief file
  blogsmith generate brief.json

  # Generate multiple articles concurrently
  blogsmith generate brief1.json brief2.json brief3.json --batch 3

  # Render a standalone HTML page instead of JSON
  blogsmith generate brief.json --format html -o article.html

  # Write a markdown quality report alongside
  blogsmith generate brief.json -o article.json --report report.md

Company profile file (.blogsmith) example:
  defaults:
    language: en
  companies:
    example.com:
      competitors: [rival.com, other.io]
      links: [/pricing, /blog/getting-started]`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Output file path; with multiple briefs this is a directory (default: stdout)")
	cmd.Flags().StringP("format", "f", config.FormatJSON,
		"Output format: json or html")
	cmd.Flags().StringP("report", "r", "",
		"Write a markdown quality report to this path")
	cmd.Flags().StringP("api-key", "k", "",
		"Generation API key (default: GEMINI_API_KEY or GOOGLE_API_KEY env)")
	cmd.Flags().StringP("model", "m", config.DefaultContentModel,
		"Model used for article generation")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of briefs processed concurrently")
	cmd.Flags().Bool("no-cache", false,
		"Disable the URL probe cache")
	cmd.Flags().StringP("config", "c", "",
		"Company profile file path (default: .blogsmith in current or home directory)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultGenerateTimeout,
		"Timeout for one generation call")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.APIKey == "" {
		return config.ErrMissingAPIKey
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	profiles, err := loadProfiles(configPath)
	if err != nil {
		return err
	}

	briefs, err := loadBriefs(args, profiles)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, briefs, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.APIKey, err = cmd.Flags().GetString("api-key")
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = apiKeyFromEnv()
	}

	cfg.ContentModel, err = cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ReportPath, err = cmd.Flags().GetString("report")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	cfg.GenerateTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// apiKeyFromEnv reads the generation API key from the environment.
func apiKeyFromEnv() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a credential-masking structured logger.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return log.NewSecureLogger(os.Stderr, level)
}

// loadProfiles loads the company profile file. An explicitly specified
// path must exist; an absent default file yields an empty profile set.
func loadProfiles(configPath string) (*config.File, error) {
	found := config.FindConfigFile(configPath)
	if found == "" {
		if configPath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return &config.File{Companies: make(map[string]config.Profile)}, nil
	}

	profiles, err := config.LoadConfigFile(found)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
	}
	return profiles, nil
}

// loadBriefs reads every brief argument and applies profile defaults
// for fields the brief leaves empty.
func loadBriefs(args []string, profiles *config.File) ([]*model.Brief, error) {
	briefs := make([]*model.Brief, 0, len(args))
	for _, arg := range args {
		brief, err := model.LoadBrief(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid brief %q: %w", arg, err)
		}
		applyProfile(brief, profiles)
		briefs = append(briefs, brief)
	}
	return briefs, nil
}

// applyProfile fills profile defaults into brief fields left empty.
// Brief values always win over profile values.
func applyProfile(brief *model.Brief, profiles *config.File) {
	p := profiles.GetProfile(urlcheck.NormalizeHost(brief.CompanyURL))

	if len(brief.Competitors) == 0 {
		brief.Competitors = p.Competitors
	}
	if len(brief.Links) == 0 {
		brief.Links = p.Links
	}
	if brief.Instruction == "" {
		brief.Instruction = p.Instruction
	}
	if p.Language != "" && brief.Language == "en" {
		brief.Language = p.Language
	}
}

// runGenerate wires the pipeline dependencies and processes all briefs.
func runGenerate(ctx context.Context, cfg *config.Config, briefs []*model.Brief, logger *slog.Logger) error {
	// One probe client shared by every validator; its connection pool
	// is reused across all probes in the run.
	probeClient := &http.Client{}

	var cache urlcheck.Cache
	if !cfg.NoCache {
		probeCache, err := database.Open(cfg.CacheDir, database.Options{
			CreateIfNotExists: true,
			EnableWAL:         true,
			MaxAge:            config.DefaultCacheMaxAge,
		})
		if err != nil {
			logger.Warn("probe cache unavailable, continuing without it", "error", err)
		} else {
			defer probeCache.Close() //nolint:errcheck // Best effort close at exit
			cache = probeCache
			logger.Info("probe cache opened", "path", probeCache.Path())
		}
	}

	provider := llm.NewGeminiProvider(cfg.APIKey)
	client := llm.NewClient(provider, cfg.BaseURL,
		llm.WithHTTPClient(&http.Client{Timeout: cfg.GenerateTimeout}),
		llm.WithClientLogger(logger))

	checker := quality.NewChecker(quality.WithCheckerLogger(logger))

	newPipeline := func(brief *model.Brief) *pipeline.Pipeline {
		validator := urlcheck.New(probeClient,
			urlcheck.WithCompany(brief.CompanyURL),
			urlcheck.WithCompetitors(brief.Competitors),
			urlcheck.WithLanguage(brief.Language),
			urlcheck.WithUserAgent(config.DefaultUserAgent),
			urlcheck.WithTimeout(cfg.ProbeTimeout),
			urlcheck.WithCache(cache),
			urlcheck.WithLogger(logger))

		extractor := sources.NewExtractor(validator,
			sources.WithProbeWorkers(cfg.ProbeWorkers),
			sources.WithSearchWorkers(cfg.SearchWorkers),
			sources.WithMaxSources(cfg.MaxSources),
			sources.WithSearcher(sources.NewGroundedSearcher(client, cfg.ValidatorModel)),
			sources.WithLogger(logger))

		return pipeline.New([]pipeline.Step{
			&pipeline.GenerateStep{Generator: client, Model: cfg.ContentModel, Logger: logger},
			&pipeline.ParseStep{},
			&pipeline.SourcesStep{Extractor: extractor},
			&pipeline.QualityStep{Checker: checker, Logger: logger},
			&pipeline.RenderStep{},
		}, pipeline.WithLogger(logger))
	}

	if len(briefs) == 1 {
		return generateOne(ctx, cfg, briefs[0], newPipeline, logger)
	}
	return generateBatch(ctx, cfg, briefs, newPipeline, logger)
}

// generateOne runs a single brief and writes the outputs.
func generateOne(ctx context.Context, cfg *config.Config, brief *model.Brief,
	newPipeline func(*model.Brief) *pipeline.Pipeline, logger *slog.Logger,
) error {
	fmt.Printf("Generating article for %q...\n", brief.PrimaryKeyword)
	start := time.Now()

	runReport := model.NewGenerationReport(brief)
	err := newPipeline(brief).Execute(ctx, runReport)

	if reportErr := writeQualityReport(cfg, runReport); reportErr != nil {
		logger.Error("failed to write quality report", "error", reportErr)
	}

	if err != nil {
		return err
	}

	fmt.Printf("Generation completed in %s\n\n", time.Since(start).Round(time.Millisecond))

	return writeArticle(cfg, runReport, cfg.OutputPath)
}

// generateBatch runs multiple briefs concurrently and writes one output
// file per brief into the output directory.
func generateBatch(ctx context.Context, cfg *config.Config, briefs []*model.Brief,
	newPipeline func(*model.Brief) *pipeline.Pipeline, logger *slog.Logger,
) error {
	fmt.Printf("Generating %d articles (concurrency: %d)...\n\n", len(briefs), cfg.BatchSize)
	start := time.Now()

	bp := pipeline.NewBatchProcessor(newPipeline, cfg.BatchSize, logger)
	reports, err := bp.ProcessBatch(ctx, briefs)
	if err != nil {
		return err
	}

	outDir := cfg.OutputPath
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	failed := 0
	for i, runReport := range reports {
		fmt.Printf("[%d/%d] %q: ", i+1, len(reports), runReport.Brief.PrimaryKeyword)
		if !runReport.Succeeded() {
			failed++
			fmt.Printf("FAILED - %s\n", runReport.Error)
			continue
		}
		fmt.Printf("ok (%s)\n", runReport.Duration.Round(time.Millisecond))

		outPath := ""
		if outDir != "" {
			outPath = filepath.Join(outDir, model.Slugify(runReport.Brief.PrimaryKeyword)+"."+cfg.Format)
		}
		if err := writeArticle(cfg, runReport, outPath); err != nil {
			logger.Error("failed to write article",
				"keyword", runReport.Brief.PrimaryKeyword,
				"error", err)
		}
	}

	fmt.Printf("\nBatch completed in %s (%d ok, %d failed)\n",
		time.Since(start).Round(time.Millisecond), len(reports)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d generations failed", failed, len(reports))
	}
	return nil
}

// writeArticle writes the article in the configured format to outPath,
// or to stdout when outPath is empty.
func writeArticle(cfg *config.Config, runReport *model.GenerationReport, outPath string) error {
	output := os.Stdout
	if outPath != "" {
		dir := filepath.Dir(outPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Best effort close on write path
		output = f
	}

	if cfg.Format == config.FormatHTML {
		if runReport.Article == nil {
			return errors.New("no article to render")
		}
		_, err := fmt.Fprintln(output, runReport.Article.HTML)
		return err
	}

	writer := report.NewJSONWriter(output, report.WithPrettyPrint())
	_, err := writer.Write(runReport)
	return err
}

// writeQualityReport writes the markdown quality report when requested.
func writeQualityReport(cfg *config.Config, runReport *model.GenerationReport) error {
	if cfg.ReportPath == "" {
		return nil
	}

	f, err := os.OpenFile(cfg.ReportPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Best effort close on write path

	_, err = report.NewMarkdownWriter(f).Write(runReport)
	return err
}
