// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docimport/docimport/internal/config"
	"github.com/docimport/docimport/internal/reflow"
)

func newReflowCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var markup bool

	cmd := &cobra.Command{
		Use:   "reflow [TEXT...]",
		Short: "Reflow a paragraph into /// comment lines",
		Long: `Reflow a paragraph into /// comment lines.

The paragraph is taken from the arguments, joined by spaces, or read from
standard input when no arguments are given. Runs of whitespace are collapsed
first. With --markup the input is a complete documentation entry such as
<summary>...</summary><returns>...</returns> and the whole comment block is
printed.`,
		Example: `  docimport reflow "Returns a value indicating whether a specified substring occurs within this string."
  echo '<summary>Trims.</summary><returns>The trimmed string.</returns>' | docimport reflow --markup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReflow(cmd, app, rootFlags, args, markup)
		},
	}

	cmd.Flags().BoolVar(&markup, "markup", false, "treat the input as a complete documentation entry")

	return cmd
}

func runReflow(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, args []string, markup bool) error {
	cfg, _, err := app.loadConfig(cmd.Context(), rootFlags)
	if err != nil {
		return app.reportError(err, rootFlags.verbose, config.ColorSchemeAuto)
	}

	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(app.stdin)
		if err != nil {
			return app.reportError(fmt.Errorf("read standard input: %w", err), cfg.UI.Verbose, cfg.UI.ColorScheme)
		}
		text = string(data)
	}

	if markup {
		block, err := newAssembler(cfg).Block(text)
		if err != nil {
			return app.reportError(err, cfg.UI.Verbose, cfg.UI.ColorScheme)
		}
		fmt.Fprint(app.stdout, block)
		return nil
	}

	lines, err := reflow.Reflow(strings.Join(strings.Fields(text), " "))
	if err != nil {
		return app.reportError(err, cfg.UI.Verbose, cfg.UI.ColorScheme)
	}
	term := cfg.Format.LineEnding.Terminator()
	for _, l := range lines {
		fmt.Fprint(app.stdout, l.String()+term)
	}
	return nil
}
