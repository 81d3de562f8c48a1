// SPDX-License-Identifier: MPL-2.0

package docblock

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/docimport/docimport/internal/reflow"
)

const (
	// MaxInlineLength is the longest single-line rendering in characters,
	// without the comment marker, allowed for param, typeparam and exception
	// elements.
	MaxInlineLength = 115

	// DefaultLineEnding terminates every emitted line unless configured otherwise.
	DefaultLineEnding = "\n"
)

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

type (
	// Assembler renders elements into comment text. The zero value is not
	// usable; create one with NewAssembler. An Assembler is immutable and safe
	// for concurrent use.
	Assembler struct {
		lineEnding string
	}

	// Option configures an Assembler.
	Option func(*Assembler)
)

// WithLineEnding sets the line terminator. An empty value keeps the default.
func WithLineEnding(term string) Option {
	return func(a *Assembler) {
		if term != "" {
			a.lineEnding = term
		}
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{lineEnding: DefaultLineEnding}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LineEnding returns the configured line terminator.
func (a *Assembler) LineEnding() string { return a.lineEnding }

// Elements parses raw markup and returns its elements in block order.
func (a *Assembler) Elements(raw string) ([]Element, error) {
	elems, err := ParseElements(raw)
	if err != nil {
		return nil, err
	}
	return Order(elems), nil
}

// Block renders the complete comment block for raw markup. Any failure,
// parse or per element, fails the whole block and no text is returned.
// Callers that want to drop single elements use Elements and Assemble.
func (a *Assembler) Block(raw string) (string, error) {
	elems, err := a.Elements(raw)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range elems {
		s, err := a.Assemble(e)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// Assemble renders one element. Malformed inner markup fails with an
// *ElementError and no text. An unclosed inline tag is reported as a
// *reflow.MalformedMarkupError, other content ParseElements could not decode
// as a *ParseError.
func (a *Assembler) Assemble(e Element) (string, error) {
	if e.err != nil {
		if err := reflow.Check(e.Inner); err != nil {
			return "", &ElementError{Name: e.Name, Err: err}
		}
		return "", &ElementError{Name: e.Name, Err: e.err}
	}

	kind := e.Kind()
	if kind == KindOther {
		outer := e.Outer
		if outer == "" {
			outer = fmt.Sprintf("<%s>%s</%s>", e.Name, e.Inner, e.Name)
		}
		return a.line(NormalizeInlineCrefs(outer)), nil
	}

	inner := NormalizeInlineCrefs(collapseSpace(e.Inner))
	if err := reflow.Check(inner); err != nil {
		return "", &ElementError{Name: e.Name, Err: err}
	}

	open := "<" + e.Name + ">"
	if attr := kind.AttrName(); attr != "" {
		open = fmt.Sprintf(`<%s %s="%s">`, e.Name, attr, attrEscaper.Replace(e.Value))
	}
	closing := "</" + e.Name + ">"

	single := open + inner + closing
	if kind.AttrName() != "" {
		if utf8.RuneCountInString(single) <= MaxInlineLength {
			return a.line(single), nil
		}
	} else if !reflow.NeedsWrap(inner) {
		return a.line(single), nil
	}

	lines, err := reflow.Reflow(inner)
	if err != nil {
		return "", &ElementError{Name: e.Name, Err: err}
	}

	var b strings.Builder
	b.WriteString(a.line(open))
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteString(a.lineEnding)
	}
	b.WriteString(a.line(closing))
	return b.String(), nil
}

func (a *Assembler) line(text string) string {
	return reflow.Line(text).String() + a.lineEnding
}
