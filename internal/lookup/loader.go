// SPDX-License-Identifier: MPL-2.0

package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultPatterns selects the files loaded when no pattern is configured.
var DefaultPatterns = []string{"**/*.xml"}

const defaultWorkers = 4

var (
	// ErrInvalidPattern is returned when a file pattern is not a valid glob.
	ErrInvalidPattern = errors.New("invalid documentation file pattern")

	// ErrMalformedFile is the sentinel error wrapped by FileError.
	ErrMalformedFile = errors.New("malformed documentation file")
)

type (
	// Loader builds an Index from a directory of IntelliSense files.
	Loader struct {
		logger   *log.Logger
		patterns []string
		workers  int
	}

	// LoaderOption configures a Loader.
	LoaderOption func(*Loader)

	// FileError reports a documentation file that could not be read or parsed.
	FileError struct {
		Path string
		Err  error
	}
)

// WithLogger sets the logger. Duplicate identifiers are logged at debug level.
func WithLogger(l *log.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithPatterns sets the doublestar patterns, relative to the loaded
// directory, that select documentation files. An empty list keeps
// DefaultPatterns.
func WithPatterns(patterns ...string) LoaderOption {
	return func(ld *Loader) {
		if len(patterns) > 0 {
			ld.patterns = slices.Clone(patterns)
		}
	}
}

// WithWorkers bounds how many files are parsed concurrently. Values below 1
// keep the default.
func WithWorkers(n int) LoaderOption {
	return func(ld *Loader) {
		if n > 0 {
			ld.workers = n
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	ld := &Loader{
		logger:   log.New(io.Discard),
		patterns: slices.Clone(DefaultPatterns),
		workers:  defaultWorkers,
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Patterns returns the configured file patterns.
func (ld *Loader) Patterns() []string { return slices.Clone(ld.patterns) }

// LoadDir parses every file under dir that matches the configured patterns.
// Files are parsed concurrently but merged in sorted path order, so the first
// definition of an identifier wins deterministically. Any malformed file fails
// the whole load with a *FileError.
func (ld *Loader) LoadDir(ctx context.Context, dir string) (*Index, error) {
	files, err := ld.Match(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		ld.logger.Warn("no documentation files found", "dir", dir, "patterns", ld.patterns)
	}

	parsed := make([][]Member, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ld.workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			members, err := parseFile(filepath.Join(dir, filepath.FromSlash(rel)))
			if err != nil {
				return &FileError{Path: rel, Err: err}
			}
			parsed[i] = members
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := newIndex()
	for i, rel := range files {
		ix.files = append(ix.files, rel)
		for _, m := range parsed[i] {
			if !ix.add(m, rel) {
				first, _ := ix.Source(m.ID)
				ld.logger.Debug("duplicate member ignored", "id", m.ID, "file", rel, "first", first)
			}
		}
	}
	ld.logger.Debug("documentation loaded", "dir", dir, "files", len(files), "members", ix.Len(), "duplicates", ix.Duplicates())
	return ix, nil
}

// Match returns the slash-separated paths, relative to dir, of the files
// selected by the configured patterns, sorted and without duplicates.
func (ld *Loader) Match(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("documentation directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documentation directory %q: not a directory", dir)
	}

	fsys := os.DirFS(dir)
	var files []string
	for _, pattern := range ld.patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("match %q in %s: %w", pattern, dir, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func parseFile(path string) ([]Member, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseMembers(f)
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrMalformedFile, e.Path, e.Err)
}

// Unwrap returns ErrMalformedFile and the underlying error.
func (e *FileError) Unwrap() []error { return []error{ErrMalformedFile, e.Err} }
