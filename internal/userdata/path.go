// Package userdata implements the path-addressed user-data store: field
// paths into nested map/list documents, a total resolver, mutating
// operations with a full load-modify-persist cycle per call, and the
// single-active-entry invariant over activatable objects.
package userdata

import (
	"strconv"
	"strings"
)

// Segment is one step of a field path: a map key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a map-key segment.
func Key(key string) Segment {
	return Segment{Key: key}
}

// Index returns a sequence-index segment.
func Index(index int) Segment {
	return Segment{Index: index, IsIndex: true}
}

// String returns the segment's text form: the key itself, or the decimal
// index.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is an ordered sequence of segments addressing a nested location
// within a document.
type Path []Segment

// NewPath builds a path from segments.
func NewPath(segments ...Segment) Path {
	return Path(segments)
}

// ParseSegments maps path tokens to segments: tokens made of decimal digits
// address sequence indices, everything else map keys.
func ParseSegments(tokens []string) Path {
	path := make(Path, 0, len(tokens))
	for _, token := range tokens {
		if index, err := strconv.Atoi(token); err == nil && index >= 0 {
			path = append(path, Index(index))
			continue
		}
		path = append(path, Key(token))
	}
	return path
}

// String joins the segments with dots, for error metadata and logs.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}
