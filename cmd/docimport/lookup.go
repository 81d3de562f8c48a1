// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docimport/docimport/internal/config"
)

// lookupFlagValues holds the flags of `docimport lookup`.
type lookupFlagValues struct {
	docs docsFlagValues
	list bool
	raw  bool
}

func newLookupCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &lookupFlagValues{}

	cmd := &cobra.Command{
		Use:   "lookup [ID...]",
		Short: "Print the comment block for documentation identifiers",
		Long: `Print the assembled /// comment block for each documentation identifier.

Identifiers use the documentation ID format, a kind letter followed by a
colon and the qualified name, for example "T:System.String" or
"M:System.String.Trim". With --list, print the documentation files that
were loaded instead.`,
		Example: `  docimport lookup --docs ./ref/xml "T:System.String"
  docimport lookup --docs ./ref/xml --raw "M:System.String.Trim"
  docimport lookup --docs ./ref/xml --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.list && len(args) == 0 {
				return fmt.Errorf("at least one identifier is required unless --list is set")
			}
			return runLookup(cmd, app, rootFlags, flags, args)
		},
	}

	flags.docs.register(cmd)
	cmd.Flags().BoolVarP(&flags.list, "list", "l", false, "list the loaded documentation files")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print the raw markup instead of the comment block")

	return cmd
}

func runLookup(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *lookupFlagValues, ids []string) error {
	ctx := cmd.Context()

	cfg, _, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return app.reportError(err, rootFlags.verbose, config.ColorSchemeAuto)
	}
	if err := flags.docs.apply(cmd, cfg); err != nil {
		return app.reportError(err, cfg.UI.Verbose, cfg.UI.ColorScheme)
	}

	ix, err := loadIndex(ctx, cfg, app.newLogger(cfg.UI.Verbose))
	if err != nil {
		return app.reportError(err, cfg.UI.Verbose, cfg.UI.ColorScheme)
	}

	if flags.list {
		for _, f := range ix.Files() {
			fmt.Fprintln(app.stdout, f)
		}
		fmt.Fprintf(app.stderr, "%s %d members in %d files (%d duplicates ignored)\n",
			SuccessStyle.Render("✓"), ix.Len(), len(ix.Files()), ix.Duplicates())
		return nil
	}

	asm := newAssembler(cfg)
	failed := 0
	for i, id := range ids {
		if i > 0 {
			fmt.Fprintln(app.stdout)
		}

		raw, ok := ix.Lookup(id)
		if !ok {
			fmt.Fprintf(app.stderr, "%s no documentation for %s\n", WarningStyle.Render("!"), CmdStyle.Render(id))
			failed++
			continue
		}

		if cfg.UI.Verbose {
			if src, ok := ix.Source(id); ok {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("// "+id+" ("+src+")"))
			}
		}

		if flags.raw {
			fmt.Fprintln(app.stdout, raw)
			continue
		}

		block, err := asm.Block(raw)
		if err != nil {
			fmt.Fprintf(app.stderr, "%s %s: %v\n", ErrorStyle.Render("✗"), CmdStyle.Render(id), err)
			failed++
			continue
		}
		fmt.Fprint(app.stdout, block)
	}

	if failed > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}
