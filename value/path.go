package value

import (
	"fmt"
	"strings"
)

// Path is the canonical slash-delimited hierarchical name described in §3.
// It is a plain value type, but it holds a slice, so it is not comparable
// with == and cannot be a map key; callers compare and key by String(). The Crate
// decoder additionally stores Paths in an index-addressed pool (see
// intern.PathPool) so that node relationships are integer indices rather
// than pointers, per §9 "Paths without pointers"; this type is the value
// those indices resolve to.
type Path struct {
	absolute bool
	elems    []string // prim path elements, root-to-leaf
	propPart string   // property name suffix, "" if this is a prim-only path
}

// RootPath is the absolute pseudo-root path "/".
func RootPath() Path { return Path{absolute: true} }

// NewElementPath constructs a single-segment relative path (an "element
// path" per the GLOSSARY): just a child or property name, no slashes.
func NewElementPath(name string) Path {
	return Path{elems: []string{name}}
}

// ParsePath parses a path literal. It accepts the optional `<...>` bracket
// wrapping used in ASCII path-literal contexts and the optional
// `.propertyName` suffix described in §3.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		if !strings.HasSuffix(s, ">") {
			return Path{}, fmt.Errorf("value: unterminated path literal %q", s)
		}
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return Path{}, nil
	}

	primPart := s
	propPart := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		primPart = s[:idx]
		propPart = s[idx+1:]
	}

	p := Path{propPart: propPart}
	if strings.HasPrefix(primPart, "/") {
		p.absolute = true
		primPart = primPart[1:]
	}
	if primPart != "" {
		p.elems = strings.Split(primPart, "/")
	}
	return p, nil
}

// IsAbsolute reports whether the path is rooted at "/".
func (p Path) IsAbsolute() bool { return p.absolute }

// IsEmpty reports whether the path names neither a prim nor a property.
func (p Path) IsEmpty() bool { return !p.absolute && len(p.elems) == 0 && p.propPart == "" }

// IsProperty reports whether the path has a `.property` suffix.
func (p Path) IsProperty() bool { return p.propPart != "" }

// PropertyName returns the `.property` suffix, or "" if this is a
// prim-only path.
func (p Path) PropertyName() string { return p.propPart }

// PrimPath returns the path with any property suffix stripped.
func (p Path) PrimPath() Path {
	p2 := p
	p2.propPart = ""
	return p2
}

// AppendProperty returns a new Path naming property `name` on p's prim.
func (p Path) AppendProperty(name string) Path {
	p2 := p
	p2.propPart = name
	return p2
}

// AppendChild returns a new Path for the child prim `name` under p.
func (p Path) AppendChild(name string) Path {
	elems := make([]string, len(p.elems), len(p.elems)+1)
	copy(elems, p.elems)
	elems = append(elems, name)
	return Path{absolute: p.absolute, elems: elems}
}

// ElementName returns the path's leaf element name: the last prim
// component if this is a prim path, or the property suffix if it is a
// property path.
func (p Path) ElementName() string {
	if p.propPart != "" {
		return p.propPart
	}
	if len(p.elems) == 0 {
		return ""
	}
	return p.elems[len(p.elems)-1]
}

// ParentPath returns the path to p's parent prim, dropping any property
// suffix and the leaf prim element.
func (p Path) ParentPath() Path {
	if p.propPart != "" {
		return p.PrimPath()
	}
	if len(p.elems) == 0 {
		return p
	}
	elems := p.elems[:len(p.elems)-1]
	return Path{absolute: p.absolute, elems: elems}
}

// String renders the canonical textual form.
func (p Path) String() string {
	var sb strings.Builder
	if p.absolute {
		sb.WriteByte('/')
	}
	sb.WriteString(strings.Join(p.elems, "/"))
	if p.propPart != "" {
		sb.WriteByte('.')
		sb.WriteString(p.propPart)
	}
	return sb.String()
}
