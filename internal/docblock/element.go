// SPDX-License-Identifier: MPL-2.0

package docblock

import (
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"strings"
)

// Element names with dedicated rendering rules.
const (
	NameSummary   = "summary"
	NameTypeParam = "typeparam"
	NameParam     = "param"
	NameReturns   = "returns"
	NameException = "exception"
)

const (
	rootOpen  = "<doc>"
	rootClose = "</doc>"
)

// Kind classifies an element. Kinds are declared in block order.
type Kind int

const (
	KindSummary Kind = iota
	KindTypeParam
	KindParam
	KindReturns
	KindException
	// KindOther is any element without dedicated rendering. It is emitted
	// after all others as a single line of its outer markup.
	KindOther
)

// KindOf returns the kind of the element called name. Matching is case
// insensitive.
func KindOf(name string) Kind {
	switch strings.ToLower(name) {
	case NameSummary:
		return KindSummary
	case NameTypeParam:
		return KindTypeParam
	case NameParam:
		return KindParam
	case NameReturns:
		return KindReturns
	case NameException:
		return KindException
	default:
		return KindOther
	}
}

// AttrName returns the attribute rendered on elements of this kind, or ""
// for unattributed kinds.
func (k Kind) AttrName() string {
	switch k {
	case KindParam, KindTypeParam:
		return "name"
	case KindException:
		return "cref"
	default:
		return ""
	}
}

// Element is one top-level documentation element.
type Element struct {
	// Name is the lower-cased element name.
	Name string
	// Value is the attribute value for param, typeparam and exception
	// elements, with any cref kind prefix removed.
	Value string
	// Inner is the element content with whitespace runs collapsed.
	Inner string
	// Outer is the whole element with whitespace runs collapsed. It is only
	// set by ParseElements and only used for KindOther.
	Outer string

	// err is set when the element could be delimited but its content is not
	// well-formed. Assemble reports it.
	err error
}

// NewElement builds an element from its parts, normalizing value the same way
// ParseElements does.
func NewElement(name, value, inner string) Element {
	return Element{
		Name:  strings.ToLower(name),
		Value: NormalizeCref(value),
		Inner: collapseSpace(inner),
	}
}

// Kind returns the element's kind.
func (e Element) Kind() Kind { return KindOf(e.Name) }

// ParseElements splits raw markup into its top-level elements, in source
// order. Inner markup is kept verbatim apart from whitespace, which is
// collapsed to single spaces. Text between top-level elements is ignored.
//
// An element whose content is not well-formed is still returned when its
// start and end tags can be found; Assemble then fails for that element
// alone. A *ParseError is returned only when the elements themselves cannot
// be delimited.
func ParseElements(raw string) ([]Element, error) {
	elems, err := decodeElements(raw)
	if err == nil {
		return elems, nil
	}

	spans, ok := splitTopLevel(raw)
	if !ok {
		return nil, err
	}
	elems = make([]Element, 0, len(spans))
	for _, sp := range spans {
		e, ok := decodeSpan(raw, sp)
		if !ok {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// decodeElements parses raw with a strict XML decoder.
func decodeElements(raw string) ([]Element, error) {
	src := rootOpen + raw + rootClose
	d := xml.NewDecoder(strings.NewReader(src))

	var (
		elems      []Element
		cur        Element
		depth      int
		outerStart int64
		innerStart int64
	)
	for {
		off := d.InputOffset()
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Offset: max(off-int64(len(rootOpen)), 0), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				cur = startElement(t)
				outerStart, innerStart = off, d.InputOffset()
			}
		case xml.EndElement:
			if depth == 2 {
				cur.Inner = collapseSpace(src[innerStart:off])
				cur.Outer = collapseSpace(src[outerStart:d.InputOffset()])
				elems = append(elems, cur)
			}
			depth--
		}
	}
	return elems, nil
}

// decodeSpan decodes one top-level element. When its content is not
// well-formed, the element is rebuilt from its start tag and raw content and
// carries the decoder error.
func decodeSpan(raw string, sp span) (Element, bool) {
	text := raw[sp.start:sp.end]
	elems, err := decodeElements(text)
	if err == nil {
		if len(elems) != 1 {
			return Element{}, false
		}
		return elems[0], true
	}

	head, herr := decodeElements(raw[sp.start:sp.innerStart] + "</" + sp.name + ">")
	if herr != nil || len(head) != 1 {
		return Element{}, false
	}
	var pErr *ParseError
	if errors.As(err, &pErr) {
		pErr.Offset += int64(sp.start)
	}

	e := head[0]
	e.Inner = collapseSpace(raw[sp.innerStart:sp.innerEnd])
	e.Outer = collapseSpace(text)
	e.err = err
	return e, true
}

// Order sorts elements into block order: summary, typeparams, params,
// returns, exceptions, then everything else. Elements of the same kind keep
// their relative order. The input slice is not modified.
func Order(elems []Element) []Element {
	out := slices.Clone(elems)
	slices.SortStableFunc(out, func(a, b Element) int {
		return int(a.Kind()) - int(b.Kind())
	})
	return out
}

func startElement(t xml.StartElement) Element {
	e := Element{Name: strings.ToLower(t.Name.Local)}
	attr := e.Kind().AttrName()
	if attr == "" {
		return e
	}
	for _, a := range t.Attr {
		if a.Name.Local == attr {
			e.Value = NormalizeCref(a.Value)
			return e
		}
	}
	if len(t.Attr) > 0 {
		e.Value = NormalizeCref(t.Attr[0].Value)
	}
	return e
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
