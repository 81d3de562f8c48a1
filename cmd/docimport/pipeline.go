// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/docimport/docimport/internal/config"
	"github.com/docimport/docimport/internal/docblock"
	"github.com/docimport/docimport/internal/importer"
	"github.com/docimport/docimport/internal/issue"
	"github.com/docimport/docimport/internal/lookup"
	"github.com/docimport/docimport/internal/manifest"
)

// docsFlagValues are the flags that locate documentation files, shared by
// render and lookup.
type docsFlagValues struct {
	dir      string
	patterns []string
}

func (f *docsFlagValues) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "docs", "d", "", "directory holding the XML documentation files (overrides docs.dir)")
	cmd.Flags().StringSliceVar(&f.patterns, "pattern", nil, "glob selecting documentation files, relative to --docs; repeatable (overrides docs.patterns)")
}

// apply overrides the docs section of cfg with the flags the user set and
// re-validates the result.
func (f *docsFlagValues) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("docs") {
		cfg.Docs.Dir = config.DocsDir(f.dir)
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Docs.Patterns = cfg.Docs.Patterns[:0]
		for _, p := range f.patterns {
			cfg.Docs.Patterns = append(cfg.Docs.Patterns, config.DocsPattern(p))
		}
	}

	var errs []error
	if ok, dirErrs := cfg.Docs.Dir.IsValid(); !ok {
		errs = append(errs, dirErrs...)
	}
	for _, p := range cfg.Docs.Patterns {
		if ok, patErrs := p.IsValid(); !ok {
			errs = append(errs, patErrs...)
		}
	}
	if len(errs) > 0 {
		return issue.NewErrorContext().
			WithOperation("read documentation options").
			WithSuggestion("Quote glob patterns so the shell does not expand them").
			WithIssue(issue.InvalidPatternId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	if cfg.Docs.Dir == "" {
		return issue.NewErrorContext().
			WithOperation("locate documentation").
			WithSuggestion("Pass --docs DIR or set docs.dir in the configuration").
			WithIssue(issue.DocsDirNotFoundId).
			Wrap(errors.New("no documentation directory configured")).
			BuildError()
	}
	return nil
}

// loadIndex loads every documentation file selected by cfg. A directory that
// yields no files is an error since every lookup would miss.
func loadIndex(ctx context.Context, cfg *config.Config, logger *log.Logger) (*lookup.Index, error) {
	dir := cfg.Docs.Dir.String()
	loader := lookup.NewLoader(
		lookup.WithLogger(logger),
		lookup.WithPatterns(cfg.Docs.PatternStrings()...),
		lookup.WithWorkers(int(cfg.Import.Workers)),
	)

	ix, err := loader.LoadDir(ctx, dir)
	if err != nil {
		ec := issue.NewErrorContext().
			WithOperation("load documentation").
			WithResource(dir).
			Wrap(err)

		var fileErr *lookup.FileError
		switch {
		case errors.Is(err, context.Canceled):
			return nil, err
		case errors.Is(err, fs.ErrNotExist):
			ec.WithIssue(issue.DocsDirNotFoundId).
				WithSuggestion("Check the --docs path or docs.dir")
		case errors.Is(err, fs.ErrPermission):
			ec.WithIssue(issue.PermissionDeniedId)
		case errors.Is(err, lookup.ErrInvalidPattern):
			ec.WithIssue(issue.InvalidPatternId)
		case errors.As(err, &fileErr):
			ec.WithResource(fileErr.Path).
				WithSuggestion("Fix the XML in this file or exclude it with --pattern")
		}
		return nil, ec.BuildError()
	}

	if len(ix.Files()) == 0 {
		return nil, issue.NewErrorContext().
			WithOperation("load documentation").
			WithResource(dir).
			WithIssue(issue.NoDocumentationFilesId).
			Wrap(errors.New("no files match " + strings.Join(cfg.Docs.PatternStrings(), ", "))).
			BuildError()
	}
	return ix, nil
}

// loadManifest reads the site manifest at path.
func loadManifest(path string) (*manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err == nil {
		return m, nil
	}

	ec := issue.NewErrorContext().
		WithOperation("load site manifest").
		WithResource(path).
		Wrap(err)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ec.WithIssue(issue.FileNotFoundId)
	case errors.Is(err, fs.ErrPermission):
		ec.WithIssue(issue.PermissionDeniedId)
	default:
		ec.WithIssue(issue.ManifestLoadFailedId)
	}
	return nil, ec.BuildError()
}

// newAssembler returns a block assembler using the configured line ending.
func newAssembler(cfg *config.Config) *docblock.Assembler {
	return docblock.NewAssembler(docblock.WithLineEnding(cfg.Format.LineEnding.Terminator()))
}

// runImport produces results for every site of m.
func runImport(ctx context.Context, cfg *config.Config, logger *log.Logger, ix lookup.Lookup, m *manifest.Manifest) (importer.Results, error) {
	im := importer.New(ix,
		importer.WithRenderer(newAssembler(cfg)),
		importer.WithLogger(logger),
		importer.WithPolicy(cfg.Import.OnMalformed),
		importer.WithIncludeNonPublic(cfg.Import.IncludeNonPublic),
		importer.WithWorkers(int(cfg.Import.Workers)),
	)

	sites := m.DeclarationSites()
	logger.Debug("importing documentation", "sites", len(sites), "policy", im.Policy())
	results, err := im.Run(ctx, sites)
	if err != nil {
		if errors.Is(err, importer.ErrAborted) {
			return nil, issue.NewErrorContext().
				WithOperation("import documentation").
				WithIssue(issue.ImportAbortedId).
				Wrap(err).
				BuildError()
		}
		return nil, err
	}
	return results, nil
}
