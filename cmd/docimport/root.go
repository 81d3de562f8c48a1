// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for docimport.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	// configPath is the explicit --config value.
	configPath string
	// verbose enables debug logging and full error chains.
	verbose bool
}

// NewRootCommand builds the docimport command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootFlags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "docimport",
		Short: "Import XML reference documentation into source comments",
		Long: TitleStyle.Render("docimport") + SubtitleStyle.Render(" - Import XML reference documentation into source comments") + `

docimport reads IntelliSense-style XML documentation files, looks up the
entry for every declaration site listed in a manifest, and produces
/// comment blocks reflowed to a readable width.

` + SubtitleStyle.Render("Examples:") + `
  docimport render --docs ./ref/xml --manifest sites.yaml
  docimport render --docs ./ref/xml --manifest sites.yaml --diff --watch
  docimport lookup --docs ./ref/xml "T:System.String"
  docimport reflow "Returns a new string in which all occurrences ..."
  docimport config show`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/docimport/config.cue)")

	rootCmd.AddCommand(newRenderCommand(app, rootFlags))
	rootCmd.AddCommand(newLookupCommand(app, rootFlags))
	rootCmd.AddCommand(newReflowCommand(app, rootFlags))
	rootCmd.AddCommand(newConfigCommand(app, rootFlags))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the App and runs the root command. This is called by
// main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
