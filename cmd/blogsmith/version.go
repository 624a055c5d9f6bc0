package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release metadata injected through ldflags; empty fields fall back to
// the build info the Go toolchain compiled into the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

type buildMetadata struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildMetadata fills version, commit, and build date, preferring
// ldflags values over what the toolchain recorded.
func resolveBuildMetadata() buildMetadata {
	meta := buildMetadata{Version: version, Commit: commit, Date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if meta.Version == "" {
			meta.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if meta.Commit == "" {
					meta.Commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if meta.Date == "" {
					meta.Date = setting.Value
				}
			}
		}
	}

	if meta.Version == "" {
		meta.Version = "(devel)"
	}
	if meta.Commit == "" {
		meta.Commit = "unknown"
	}
	if meta.Date == "" {
		meta.Date = "unknown"
	}
	return meta
}

func shortRevision(revision string) string {
	if len(revision) > 7 {
		return revision[:7]
	}
	return revision
}

// getVersion returns the version string shown by --version.
func getVersion() string {
	return resolveBuildMetadata().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of blogsmith.`,
		Run: func(cmd *cobra.Command, _ []string) {
			meta := resolveBuildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "blogsmith version %s\n", meta.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", meta.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", meta.Date)
		},
	}
}
