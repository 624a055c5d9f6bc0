// Package main provides the entry point for the blogsmith CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for blogsmith.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blogsmith",
		Short: "AI-assisted marketing blog article generator",
		Long: `Blogsmith generates long-form marketing blog articles from a company brief.

A generation run produces the article, validates every cited source URL
against the live web, repairs what can be repaired automatically, and
gates delivery on the remaining editorial errors.

An API key is read from the GEMINI_API_KEY or GOOGLE_API_KEY environment
variable unless passed with --api-key.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
