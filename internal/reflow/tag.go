// SPDX-License-Identifier: MPL-2.0

package reflow

import (
	"strings"
	"unicode/utf8"
)

// HasInlineTag reports whether text contains an inline tag, i.e. whether a
// '<' occurs at or before the first '>'. It does not validate the markup;
// nested tags are not supported.
func HasInlineTag(text string) bool {
	open := strings.IndexByte(text, '<')
	if open < 0 {
		return false
	}
	return strings.IndexByte(text[open:], '>') >= 0
}

// Check returns a *MalformedMarkupError when text contains a '<' that is never
// closed by a later '>'. A stray '>' outside of a tag is plain text.
func Check(text string) error {
	open := -1
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<':
			if open < 0 {
				open = i
			}
		case '>':
			open = -1
		}
	}
	if open >= 0 {
		return &MalformedMarkupError{Offset: open, Reason: "inline tag is never closed by '>'"}
	}
	return nil
}

// ResolveBoundary returns the cut offset to use when the candidate break at i
// falls inside an inline tag. start is the offset where the current line
// begins and bounds the backward search. start, i and the result are byte
// offsets; tagLimit counts characters, like Threshold.
//
// When the tag closes at or before tagLimit the cut lands right after the
// closing '>', or after the punctuation mark that immediately follows it.
// Otherwise the cut lands right before the tag's '<' so that the whole tag
// moves to the next line. A tag that opens the current line cannot move, so it
// stays put and the first rule applies.
func ResolveBoundary(text string, start, i, tagLimit int) (int, error) {
	if i < start || i >= len(text) {
		return 0, &MalformedMarkupError{Offset: i, Reason: "scan position outside of the paragraph"}
	}

	end := strings.IndexByte(text[i:], '>')
	if end < 0 {
		return 0, &MalformedMarkupError{Offset: i, Reason: "inline tag is never closed by '>'"}
	}
	end += i

	if utf8.RuneCountInString(text[:end]) <= tagLimit {
		return afterTag(text, end), nil
	}

	open := strings.LastIndexByte(text[start:i], '<')
	if open < 0 {
		return 0, &MalformedMarkupError{Offset: i, Reason: "inline tag has no opening '<'"}
	}
	open += start

	if open == start {
		return afterTag(text, end), nil
	}
	return open, nil
}

// afterTag returns the offset just past the '>' at end, swallowing one
// trailing punctuation mark.
func afterTag(text string, end int) int {
	if end+1 < len(text) && isPunctuation(text[end+1]) {
		return end + 2
	}
	return end + 1
}

func isPunctuation(c byte) bool {
	switch c {
	case '.', ',', '!', '?', ';':
		return true
	default:
		return false
	}
}
