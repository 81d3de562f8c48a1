// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/docimport/docimport/internal/config"
	"github.com/docimport/docimport/internal/issue"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra command handler receives an App and
	// reads its configuration and writers through it.
	App struct {
		Config ConfigProvider
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options and reports
	// which file, if any, it was read from.
	ConfigProvider interface {
		LoadWithSource(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// loadConfig loads the configuration honoring the global --config and
// --verbose flags. The returned path is the file the configuration came from,
// or "" when only defaults and environment variables apply.
func (a *App) loadConfig(ctx context.Context, rootFlags *rootFlagValues) (*config.Config, string, error) {
	cfg, path, err := a.Config.LoadWithSource(ctx, config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		return nil, "", err
	}
	if rootFlags.verbose {
		cfg.UI.Verbose = true
	}
	return cfg, path, nil
}

// newLogger builds the diagnostic logger shared by the loader, the importer
// and the watcher.
func (a *App) newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          config.AppName,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// reportError writes a user-facing rendition of err to stderr and returns an
// *ExitError so the process exits non-zero without printing err twice.
// Actionable errors are shown with their suggestions, and the matching help
// page from the issue catalog is appended when one exists.
func (a *App) reportError(err error, verbose bool, scheme config.ColorScheme) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}

	fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if iss, ok := issue.IssueOf(err); ok {
		if scheme == "" {
			scheme = config.ColorSchemeAuto
		}
		rendered, renderErr := iss.Render(scheme.GlamourStyle())
		if renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
	}

	return &ExitError{Code: 1}
}

// formatErrorForDisplay formats an error for user display. Actionable errors
// use their Format method; verbose mode adds the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
