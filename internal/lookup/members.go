// SPDX-License-Identifier: MPL-2.0

package lookup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Member is one <member> entry of an IntelliSense file.
type Member struct {
	// ID is the documentation identifier from the name attribute.
	ID string
	// Raw is the inner markup of the member element, verbatim.
	Raw string
}

// ParseMembers reads an IntelliSense document and returns its members in
// document order. Members without a name attribute are skipped.
func ParseMembers(r io.Reader) ([]Member, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read documentation: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	d := xml.NewDecoder(bytes.NewReader(data))
	var (
		members    []Member
		cur        *Member
		innerStart int64
		depth      int
		memberAt   int
	)
	for {
		off := d.InputOffset()
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse documentation at offset %d: %w", off, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if cur == nil && t.Name.Local == "member" {
				cur = &Member{ID: attr(t, "name")}
				innerStart = d.InputOffset()
				memberAt = depth
			}
		case xml.EndElement:
			if cur != nil && depth == memberAt {
				cur.Raw = string(data[innerStart:off])
				if cur.ID != "" {
					members = append(members, *cur)
				}
				cur = nil
			}
			depth--
		}
	}
	return members, nil
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
