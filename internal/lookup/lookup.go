// SPDX-License-Identifier: MPL-2.0

package lookup

import (
	"maps"
	"slices"
)

type (
	// Lookup resolves a documentation identifier to its raw markup. A miss is
	// reported through ok and is not an error.
	Lookup interface {
		Lookup(id string) (raw string, ok bool)
	}

	// Map is a Lookup backed by a plain map.
	Map map[string]string

	// Index is the Lookup produced by Loader. It is read-only once built and
	// safe for concurrent use.
	Index struct {
		members    map[string]string
		sources    map[string]string
		files      []string
		duplicates int
	}
)

// Lookup implements Lookup.
func (m Map) Lookup(id string) (string, bool) {
	raw, ok := m[id]
	return raw, ok
}

func newIndex() *Index {
	return &Index{
		members: make(map[string]string),
		sources: make(map[string]string),
	}
}

// Lookup implements Lookup.
func (ix *Index) Lookup(id string) (string, bool) {
	raw, ok := ix.members[id]
	return raw, ok
}

// Source returns the file, relative to the loaded directory, that defined id.
func (ix *Index) Source(id string) (string, bool) {
	f, ok := ix.sources[id]
	return f, ok
}

// Len returns the number of distinct identifiers.
func (ix *Index) Len() int { return len(ix.members) }

// Files returns the loaded files in load order.
func (ix *Index) Files() []string { return slices.Clone(ix.files) }

// Duplicates returns how many member definitions were ignored because their
// identifier had already been defined.
func (ix *Index) Duplicates() int { return ix.duplicates }

// IDs returns all identifiers, sorted.
func (ix *Index) IDs() []string {
	return slices.Sorted(maps.Keys(ix.members))
}

// add records a member unless its id is already known. It reports whether
// the member was added.
func (ix *Index) add(m Member, file string) bool {
	if _, exists := ix.members[m.ID]; exists {
		ix.duplicates++
		return false
	}
	ix.members[m.ID] = m.Raw
	ix.sources[m.ID] = file
	return true
}
