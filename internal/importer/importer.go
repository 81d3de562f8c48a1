// SPDX-License-Identifier: MPL-2.0

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/docimport/docimport/internal/docblock"
	"github.com/docimport/docimport/internal/lookup"
	"github.com/docimport/docimport/internal/site"
)

const defaultWorkers = 4

// ErrAborted is returned by Process and Run when malformed markup is met
// under PolicyAbort.
var ErrAborted = errors.New("import aborted on malformed markup")

type (
	// Renderer turns raw markup into comment text. *docblock.Assembler is the
	// production implementation.
	Renderer interface {
		Elements(raw string) ([]docblock.Element, error)
		Assemble(e docblock.Element) (string, error)
	}

	// Sourcer is implemented by lookups that know which file defined an
	// identifier, such as *lookup.Index.
	Sourcer interface {
		Source(id string) (string, bool)
	}

	// Importer produces comment blocks for declaration sites. It holds no
	// mutable state and is safe for concurrent use.
	Importer struct {
		lookup           lookup.Lookup
		renderer         Renderer
		logger           *log.Logger
		policy           Policy
		includeNonPublic bool
		workers          int
	}

	// Option configures an Importer.
	Option func(*Importer)
)

// WithRenderer replaces the default docblock assembler.
func WithRenderer(r Renderer) Option {
	return func(im *Importer) {
		if r != nil {
			im.renderer = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// WithPolicy sets the malformed markup policy.
func WithPolicy(p Policy) Option {
	return func(im *Importer) {
		if p != "" {
			im.policy = p
		}
	}
}

// WithIncludeNonPublic makes private and internal declarations documentable.
func WithIncludeNonPublic(include bool) Option {
	return func(im *Importer) { im.includeNonPublic = include }
}

// WithWorkers bounds how many sites are processed concurrently.
func WithWorkers(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.workers = n
		}
	}
}

// New creates an Importer reading documentation from l.
func New(l lookup.Lookup, opts ...Option) *Importer {
	im := &Importer{
		lookup:   l,
		renderer: docblock.NewAssembler(),
		logger:   log.New(io.Discard),
		policy:   DefaultPolicy,
		workers:  defaultWorkers,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Policy returns the configured malformed markup policy.
func (im *Importer) Policy() Policy { return im.policy }

// Comment returns the comment block for s. ok is false when the site is not
// documentable or its identifier has no documentation. Malformed markup fails
// the whole block regardless of the policy.
func (im *Importer) Comment(s site.DeclarationSite) (comment string, ok bool, err error) {
	if !s.Documentable(im.includeNonPublic) {
		return "", false, nil
	}
	raw, found := im.lookup.Lookup(s.Key.String())
	if !found {
		return "", false, nil
	}
	elems, err := im.renderer.Elements(raw)
	if err != nil {
		return "", false, err
	}
	if len(elems) == 0 {
		return "", false, nil
	}

	var b strings.Builder
	for _, e := range elems {
		text, err := im.renderer.Assemble(e)
		if err != nil {
			return "", false, err
		}
		b.WriteString(text)
	}
	return b.String(), true, nil
}

// Process computes the result for one site, applying the malformed markup
// policy. The error is non-nil only under PolicyAbort and wraps ErrAborted.
func (im *Importer) Process(s site.DeclarationSite) (Result, error) {
	res := Result{Site: s}

	if ok, errs := s.IsValid(); !ok {
		res.Status = StatusInvalid
		for _, err := range errs {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeInvalidSite,
				Message:  err.Error(),
				Cause:    err,
			})
		}
		return res, nil
	}

	if !s.Documentable(im.includeNonPublic) {
		res.Status = StatusSkipped
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeNotPublic,
			Message:  fmt.Sprintf("%s declaration is not part of the public surface", s.Accessibility),
		})
		return res, nil
	}

	raw, found := im.lookup.Lookup(s.Key.String())
	if !found {
		res.Status = StatusMissing
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeLookupMiss,
			Message:  "no documentation found for identifier",
		})
		return res, nil
	}
	if src, ok := im.lookup.(Sourcer); ok {
		res.Source, _ = src.Source(s.Key.String())
	}

	elems, err := im.renderer.Elements(raw)
	if err != nil {
		if im.policy == PolicyAbort {
			return res, fmt.Errorf("%w: %s: %w", ErrAborted, s.Key, err)
		}
		im.logger.Warn("unparsable documentation markup", "key", s.Key, "err", err)
		res.Status = StatusMalformed
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     CodeUnparsableMarkup,
			Message:  err.Error(),
			Cause:    err,
		})
		return res, nil
	}
	if len(elems) == 0 {
		res.Status = StatusSkipped
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeNoElements,
			Message:  "documentation has no elements",
		})
		return res, nil
	}

	var (
		b       strings.Builder
		dropped int
	)
	for _, e := range elems {
		text, err := im.renderer.Assemble(e)
		if err == nil {
			b.WriteString(text)
			continue
		}

		switch im.policy {
		case PolicyAbort:
			return res, fmt.Errorf("%w: %s: %w", ErrAborted, s.Key, err)
		case PolicySkipElement:
			dropped++
			im.logger.Debug("element dropped", "key", s.Key, "element", e.Name, "err", err)
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeElementSkipped,
				Message:  err.Error(),
				Element:  e.Name,
				Cause:    err,
			})
		default:
			im.logger.Warn("malformed documentation markup", "key", s.Key, "element", e.Name, "err", err)
			res.Status = StatusMalformed
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityError,
				Code:     CodeMalformedElement,
				Message:  err.Error(),
				Element:  e.Name,
				Cause:    err,
			})
			return res, nil
		}
	}

	res.Comment = b.String()
	switch {
	case dropped == len(elems):
		res.Status = StatusMalformed
	case dropped > 0:
		res.Status = StatusPartial
	default:
		res.Status = StatusGenerated
	}
	if res.HasComment() && s.HasComment() {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityInfo,
			Code:     CodeReplacesComment,
			Message:  "declaration already has a comment",
		})
	}
	return res, nil
}

// Run processes sites concurrently and returns their results in input order.
// Under PolicyAbort the first malformed site cancels the remaining work and
// its error is returned.
func (im *Importer) Run(ctx context.Context, sites []site.DeclarationSite) (Results, error) {
	results := make(Results, len(sites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.workers)
	for i, s := range sites {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := im.Process(s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := results.Counts()
	im.logger.Debug("import finished",
		"sites", len(sites),
		"generated", counts[StatusGenerated],
		"partial", counts[StatusPartial],
		"missing", counts[StatusMissing],
		"malformed", counts[StatusMalformed])
	return results, nil
}
