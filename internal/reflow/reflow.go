// SPDX-License-Identifier: MPL-2.0

package reflow

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Marker is the documentation comment marker that prefixes every line.
	Marker = "///"

	// MinWrapLength is the trimmed length from which a paragraph is wrapped.
	MinWrapLength = 90
)

// Line is the trimmed text of one output line, without its marker.
type Line string

// String renders the line with its comment marker.
func (l Line) String() string {
	return Marker + " " + string(l)
}

// NeedsWrap reports whether text is long enough to be split over several lines.
func NeedsWrap(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinWrapLength
}

// Reflow splits one paragraph into lines. Paragraphs shorter than
// MinWrapLength come back as a single line. An empty paragraph yields no
// lines. Markup with an unclosed inline tag fails with a
// *MalformedMarkupError and no lines.
func Reflow(text string) ([]Line, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}
	if err := Check(s); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(s) < MinWrapLength {
		return []Line{Line(s)}, nil
	}

	var lines []Line
	th := InitialThreshold()
	for start := 0; start < len(s); {
		line, next, nextTh, err := Next(s, start, th)
		if err != nil {
			return nil, err
		}
		if line != "" {
			lines = append(lines, line)
		}
		start, th = next, nextTh
	}
	return lines, nil
}

// Next takes one line off text starting at start, using the window th. It
// returns the trimmed line, the offset where the following line starts and
// the window for that line. text must already be trimmed. start and the
// returned offset are byte offsets; the window counts characters.
//
// When no cut is found before the end of text, the remainder is returned as
// the final line, next equals len(text) and th is returned unchanged. An
// inline tag in the remainder that never closes fails with a
// *MalformedMarkupError.
func Next(text string, start int, th Threshold) (Line, int, Threshold, error) {
	for start < len(text) {
		r, size := utf8.DecodeRuneInString(text[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	if start >= len(text) {
		return "", len(text), th, nil
	}
	if err := Check(text[start:]); err != nil {
		var mErr *MalformedMarkupError
		if errors.As(err, &mErr) {
			mErr.Offset += start
		}
		return "", start, th, err
	}

	tagged := HasInlineTag(text[start:])
	inTag := false
	pos := utf8.RuneCountInString(text[:start])
	for off, r := range text[start:] {
		i, col := start+off, pos
		pos++
		if tagged {
			switch r {
			case '<':
				inTag = true
			case '>':
				inTag = false
			}
		}
		if col < th.LowerBound || !unicode.IsSpace(r) {
			continue
		}

		cut := i
		if inTag {
			var err error
			cut, err = ResolveBoundary(text, start, i, th.TagLimit)
			if err != nil {
				return "", start, th, err
			}
		}
		return Line(strings.TrimSpace(text[start:cut])), cut, th.Next(), nil
	}

	return Line(strings.TrimSpace(text[start:])), len(text), th, nil
}
