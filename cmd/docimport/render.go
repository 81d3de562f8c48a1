// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/docimport/docimport/internal/config"
	"github.com/docimport/docimport/internal/importer"
	"github.com/docimport/docimport/internal/report"
	"github.com/docimport/docimport/internal/watch"
)

// renderFlagValues holds the flags of `docimport render`.
type renderFlagValues struct {
	docs             docsFlagValues
	manifestPath     string
	format           string
	lineEnding       string
	diff             bool
	includeNonPublic bool
	onMalformed      string
	watch            bool
}

func newRenderCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &renderFlagValues{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate comment blocks for the sites of a manifest",
		Long: `Generate /// comment blocks for every declaration site listed in a manifest.

Each site's documentation is looked up by its key in the XML files under
--docs, reflowed, and reported together with diagnostics. With --diff the
report shows a unified diff against each site's existing comment.

The manifest is a YAML file, or a CUE file when its extension is .cue:

  sites:
    - kind: method
      key: "M:System.String.Trim"
      accessibility: public
      file: src/String.cs
      line: 42`,
		Example: `  docimport render --docs ./ref/xml --manifest sites.yaml
  docimport render -d ./ref/xml -m sites.yaml --format json
  docimport render -d ./ref/xml -m sites.yaml --diff --on-malformed skip-element
  docimport render -d ./ref/xml -m sites.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, app, rootFlags, flags)
		},
	}

	flags.docs.register(cmd)
	cmd.Flags().StringVarP(&flags.manifestPath, "manifest", "m", "", "site manifest (YAML, or CUE with a .cue extension)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "report format: text, yaml or json (overrides output.format)")
	cmd.Flags().StringVar(&flags.lineEnding, "line-ending", "", "comment line ending: lf or crlf (overrides format.line_ending)")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show a unified diff against existing comments (overrides output.diff)")
	cmd.Flags().BoolVar(&flags.includeNonPublic, "include-non-public", false, "also document private and internal declarations")
	cmd.Flags().StringVar(&flags.onMalformed, "on-malformed", "", "malformed markup policy: skip-element, skip-site or abort (overrides import.on_malformed)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when documentation files or the manifest change")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

// runRender loads configuration, applies flag overrides and renders once, or
// keeps re-rendering on changes under --watch.
func runRender(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *renderFlagValues) error {
	ctx := cmd.Context()

	cfg, cfgPath, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return app.reportError(err, rootFlags.verbose, config.ColorSchemeAuto)
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return app.reportError(err, cfg.UI.Verbose, cfg.UI.ColorScheme)
	}

	logger := app.newLogger(cfg.UI.Verbose)
	render := func(ctx context.Context) error {
		return renderOnce(ctx, app, cfg, logger, flags.manifestPath)
	}

	if !flags.watch {
		if err := render(ctx); err != nil {
			return app.reportError(err, cfg.UI.Verbose, cfg.UI.ColorScheme)
		}
		return nil
	}
	return runRenderWatch(ctx, app, cfg, cfgPath, logger, flags.manifestPath, render)
}

// apply merges the render flags the user set into cfg.
func (f *renderFlagValues) apply(cmd *cobra.Command, cfg *config.Config) error {
	if err := f.docs.apply(cmd, cfg); err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		format, err := report.ParseFormat(f.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	if changed("line-ending") {
		le := config.LineEnding(f.lineEnding)
		if ok, errs := le.IsValid(); !ok {
			return errs[0]
		}
		cfg.Format.LineEnding = le
	}
	if changed("diff") {
		cfg.Output.Diff = f.diff
	}
	if changed("include-non-public") {
		cfg.Import.IncludeNonPublic = f.includeNonPublic
	}
	if changed("on-malformed") {
		policy, err := importer.ParsePolicy(f.onMalformed)
		if err != nil {
			return err
		}
		cfg.Import.OnMalformed = policy
	}
	return nil
}

// renderOnce runs the whole pipeline: manifest, documentation index, import
// and report. The manifest and documentation are re-read on every call so
// that watch mode picks up edits.
func renderOnce(ctx context.Context, app *App, cfg *config.Config, logger *log.Logger, manifestPath string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}
	ix, err := loadIndex(ctx, cfg, logger)
	if err != nil {
		return err
	}
	results, err := runImport(ctx, cfg, logger, ix, m)
	if err != nil {
		return err
	}
	return report.Write(app.stdout, results, report.Options{
		Format: cfg.Output.Format,
		Diff:   cfg.Output.Diff,
	})
}

// runRenderWatch renders once, then re-renders whenever a documentation file,
// the manifest or the configuration file changes. Render failures are
// reported and watching continues so the user can fix the input and save
// again. It blocks until ctx is cancelled.
func runRenderWatch(ctx context.Context, app *App, cfg *config.Config, cfgPath string, logger *log.Logger, manifestPath string, render func(context.Context) error) error {
	files := []string{manifestPath}
	if cfgPath != "" {
		files = append(files, cfgPath)
	}

	fmt.Fprintf(app.stderr, "%s Watch mode: initial render\n", CmdStyle.Render("→"))
	if err := render(ctx); err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("! ")+formatErrorForDisplay(err, cfg.UI.Verbose))
	}

	w, err := watch.New(watch.Config{
		BaseDir:  cfg.Docs.Dir.String(),
		Patterns: cfg.Docs.PatternStrings(),
		Files:    files,
		Logger:   logger,
		Stdout:   app.stdout,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stderr, "\n%s Detected %d change(s), re-rendering\n", CmdStyle.Render("→"), len(changed))
			if err := render(ctx); err != nil {
				fmt.Fprintln(app.stderr, WarningStyle.Render("! ")+formatErrorForDisplay(err, cfg.UI.Verbose))
			}
			return nil
		},
	})
	if err != nil {
		return app.reportError(fmt.Errorf("failed to start watcher: %w", err), cfg.UI.Verbose, cfg.UI.ColorScheme)
	}

	fmt.Fprintf(app.stderr, "\n%s Watching %s for changes (Ctrl+C to stop)...\n", CmdStyle.Render("→"), cfg.Docs.Dir)
	return w.Run(ctx)
}
