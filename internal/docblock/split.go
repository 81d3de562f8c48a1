// SPDX-License-Identifier: MPL-2.0

package docblock

import "strings"

// span delimits one top-level element in raw markup. For a self-closing
// element the inner range is empty and sits at end.
type span struct {
	name                 string
	start, end           int
	innerStart, innerEnd int
}

// splitTopLevel finds the top-level elements of raw without validating their
// content. Comments, processing instructions and text between elements are
// skipped. It fails when an element has no matching end tag or a stray end
// tag appears at the top level.
func splitTopLevel(raw string) ([]span, bool) {
	var spans []span
	for i := 0; i < len(raw); {
		lt := strings.IndexByte(raw[i:], '<')
		if lt < 0 {
			break
		}
		i += lt

		switch {
		case strings.HasPrefix(raw[i:], "<!--"):
			end := strings.Index(raw[i:], "-->")
			if end < 0 {
				return nil, false
			}
			i += end + len("-->")
			continue
		case strings.HasPrefix(raw[i:], "<!"), strings.HasPrefix(raw[i:], "<?"):
			end := strings.IndexByte(raw[i:], '>')
			if end < 0 {
				return nil, false
			}
			i += end + 1
			continue
		case strings.HasPrefix(raw[i:], "</"):
			return nil, false
		}

		sp, ok := elementSpan(raw, i)
		if !ok {
			return nil, false
		}
		spans = append(spans, sp)
		i = sp.end
	}
	return spans, true
}

// elementSpan delimits the element whose start tag opens at raw[start].
// Elements of the same name nested inside it are balanced.
func elementSpan(raw string, start int) (span, bool) {
	name := tagName(raw[start+1:])
	if name == "" {
		return span{}, false
	}
	tagEnd, selfClosing, ok := startTagEnd(raw, start)
	if !ok {
		return span{}, false
	}
	sp := span{name: name, start: start, innerStart: tagEnd}
	if selfClosing {
		sp.end, sp.innerEnd = tagEnd, tagEnd
		return sp, true
	}

	depth := 1
	for i := tagEnd; i < len(raw); {
		lt := strings.IndexByte(raw[i:], '<')
		if lt < 0 {
			break
		}
		i += lt

		if strings.HasPrefix(raw[i:], "</") && tagName(raw[i+2:]) == name {
			depth--
			if depth == 0 {
				gt := strings.IndexByte(raw[i:], '>')
				if gt < 0 {
					return span{}, false
				}
				sp.innerEnd, sp.end = i, i+gt+1
				return sp, true
			}
			i += 2
			continue
		}
		if tagName(raw[i+1:]) == name {
			if end, self, ok := startTagEnd(raw, i); ok && !self {
				depth++
				i = end
				continue
			}
		}
		i++
	}
	return span{}, false
}

// startTagEnd returns the offset just past the '>' closing the start tag at
// raw[start], skipping quoted attribute values.
func startTagEnd(raw string, start int) (end int, selfClosing, ok bool) {
	var quote byte
	for i := start + 1; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '<':
			return 0, false, false
		case c == '>':
			return i + 1, raw[i-1] == '/', true
		}
	}
	return 0, false, false
}

// tagName returns the XML name at the start of s, or "".
func tagName(s string) string {
	n := 0
	for n < len(s) && isNameByte(s[n], n == 0) {
		n++
	}
	return s[:n]
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == ':':
		return true
	case c >= '0' && c <= '9', c == '-', c == '.':
		return !first
	default:
		return false
	}
}
