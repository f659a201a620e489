package query

import (
	"strconv"
	"strings"
)

// SelectorName names one queryable source, like a table alias.
// Names are case-preserved and compared by value.
type SelectorName struct {
	name string
}

// NewSelectorName creates a selector name. The name must not be empty.
func NewSelectorName(name string) (SelectorName, error) {
	if strings.TrimSpace(name) == "" {
		return SelectorName{}, required("selector name")
	}
	return SelectorName{name: name}, nil
}

// Name returns the selector name as a string.
func (s SelectorName) Name() string { return s.name }

// String returns the name.
func (s SelectorName) String() string { return s.name }

// IsZero reports whether s is the zero value.
func (s SelectorName) IsZero() bool { return s.name == "" }

// Segment is one step of an absolute path.
type Segment struct {
	Name  string
	Index int // same-name-sibling index, 1-based
}

// String formats the segment, omitting the default index.
func (s Segment) String() string {
	if s.Index <= 1 {
		return s.Name
	}
	return s.Name + "[" + strconv.Itoa(s.Index) + "]"
}

// Path is a normalized absolute repository path such as /a/b[2]/c.
// The zero value is not a valid path.
type Path struct {
	value string
}

// RootPath is the path of the root node.
var RootPath = Path{value: "/"}

// NewPath parses and normalizes an absolute path. Every segment must have a
// non-empty name and an optional same-name-sibling index of at least 1;
// an index of 1 is dropped from the normalized form.
func NewPath(raw string) (Path, error) {
	if raw == "" {
		return Path{}, required("path")
	}
	if !strings.HasPrefix(raw, "/") {
		return Path{}, invalid("path %q is not absolute", raw)
	}
	if raw == "/" {
		return RootPath, nil
	}
	parts := strings.Split(raw[1:], "/")
	segs := make([]string, 0, len(parts))
	for _, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, invalid("path %q: %v", raw, err)
		}
		segs = append(segs, seg.String())
	}
	return Path{value: "/" + strings.Join(segs, "/")}, nil
}

func parseSegment(part string) (Segment, error) {
	if part == "" {
		return Segment{}, errString("empty segment")
	}
	if part == "." || part == ".." {
		return Segment{}, errString("segment " + part + " is not allowed")
	}
	name, index := part, 1
	if open := strings.IndexByte(part, '['); open >= 0 {
		if !strings.HasSuffix(part, "]") || open == 0 {
			return Segment{}, errString("malformed segment " + strconv.Quote(part))
		}
		n, err := strconv.Atoi(part[open+1 : len(part)-1])
		if err != nil || n < 1 {
			return Segment{}, errString("invalid index in segment " + strconv.Quote(part))
		}
		name, index = part[:open], n
	}
	if strings.ContainsAny(name, "[]") {
		return Segment{}, errString("malformed segment " + strconv.Quote(part))
	}
	return Segment{Name: name, Index: index}, nil
}

type errString string

func (e errString) Error() string { return string(e) }

// String returns the normalized path.
func (p Path) String() string { return p.value }

// IsZero reports whether p is the zero value.
func (p Path) IsZero() bool { return p.value == "" }

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool { return p.value == "/" }

// Segments returns the path's segments; the root path has none.
func (p Path) Segments() []Segment {
	if p.value == "" || p.value == "/" {
		return nil
	}
	parts := strings.Split(p.value[1:], "/")
	segs := make([]Segment, len(parts))
	for i, part := range parts {
		// Already validated by NewPath.
		segs[i], _ = parseSegment(part)
	}
	return segs
}

// Depth returns the number of segments.
func (p Path) Depth() int {
	if p.value == "" || p.value == "/" {
		return 0
	}
	return strings.Count(p.value, "/")
}

// Parent returns the parent path. The root's parent is the zero Path.
func (p Path) Parent() Path {
	if p.value == "" || p.value == "/" {
		return Path{}
	}
	i := strings.LastIndexByte(p.value, '/')
	if i == 0 {
		return RootPath
	}
	return Path{value: p.value[:i]}
}
