package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blogsmith/blogsmith/internal/config"
)

//go:embed templates/blogsmith.yaml templates/brief.json
var initTemplates embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a company profile file and an example brief",
		Long: `Initialize creates a new .blogsmith company profile file in the current
directory, plus an example brief.json to start from.

The generated profile includes:
- A defaults section applied to every company
- Commented examples for per-company competitor and link lists

Examples:
  # Create .blogsmith and brief.json in the current directory
  blogsmith init

  # Create the profile at a specific path
  blogsmith init -o myprofile.yaml

  # Force overwrite existing files
  blogsmith init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the company profile")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeTemplate("templates/blogsmith.yaml", outputPath, force); err != nil {
		return err
	}
	fmt.Printf("Created company profile: %s\n", outputPath)

	briefPath := filepath.Join(filepath.Dir(outputPath), "brief.json")
	if err := writeTemplate("templates/brief.json", briefPath, force); err != nil {
		return err
	}
	fmt.Printf("Created example brief:   %s\n", briefPath)

	fmt.Println("\nEdit the brief, then generate your first article with:")
	fmt.Printf("  blogsmith generate %s\n", briefPath)

	return nil
}

// writeTemplate copies one embedded template to disk.
func writeTemplate(templatePath, outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := initTemplates.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
