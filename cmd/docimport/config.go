// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docimport/docimport/internal/config"
)

// newConfigCommand creates the `docimport config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage docimport configuration",
		Long: `Manage docimport configuration.

Configuration is stored in:
  - Linux: ~/.config/docimport/config.cue
  - macOS: ~/Library/Application Support/docimport/config.cue
  - Windows: %APPDATA%\docimport\config.cue

A config.cue in the current directory is used when the platform file does not
exist. Every key can be overridden with a DOCIMPORT_ environment variable,
for example DOCIMPORT_IMPORT_WORKERS=8 for import.workers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return app.reportError(err, rootFlags.verbose, config.ColorSchemeAuto)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, rootFlags *rootFlagValues) error {
	cfg, path, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return app.reportError(err, rootFlags.verbose, config.ColorSchemeAuto)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	dir := cfg.Docs.Dir.String()
	if dir == "" {
		dir = SubtitleStyle.Render("(not set)")
	} else {
		dir = valueStyle.Render(dir)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("docs"))
	fmt.Fprintf(out, "  dir: %s\n", dir)
	fmt.Fprintf(out, "  patterns: %s\n", valueStyle.Render(strings.Join(cfg.Docs.PatternStrings(), ", ")))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("format"))
	fmt.Fprintf(out, "  line_ending: %s\n", valueStyle.Render(cfg.Format.LineEnding.String()))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("import"))
	fmt.Fprintf(out, "  include_non_public: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Import.IncludeNonPublic)))
	fmt.Fprintf(out, "  on_malformed: %s\n", valueStyle.Render(cfg.Import.OnMalformed.String()))
	fmt.Fprintf(out, "  workers: %s\n", valueStyle.Render(fmt.Sprintf("%d", cfg.Import.Workers)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(out, "  format: %s\n", valueStyle.Render(cfg.Output.Format.String()))
	fmt.Fprintf(out, "  diff: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Output.Diff)))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return app.reportError(fmt.Errorf("failed to create config: %w", err), false, config.ColorSchemeAuto)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return app.reportError(err, false, config.ColorSchemeAuto)
	}
	path, err := config.FilePath()
	if err != nil {
		return app.reportError(err, false, config.ColorSchemeAuto)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}
