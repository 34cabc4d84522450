package beagle

import "strings"

// Extraction attributes recorded on a CSSPath.
const (
	AttrHref = "href"
	AttrSrc  = "src"
	AttrText = "text"
)

// PathSeparator joins tag names in a structural selector.
const PathSeparator = " > "

// CSSPath is the structural address of one matched DOM node together with
// the attributes extracted from it. It is built once per node during a scan
// and never modified afterwards.
type CSSPath struct {
	// Path lists tag names from the document root down to the node.
	Path []string

	// Value holds extracted attributes keyed by name (AttrHref, AttrText, ...).
	Value map[string]string
}

// NewCSSPath returns a CSSPath holding copies of path and value.
func NewCSSPath(path []string, value map[string]string) CSSPath {
	p := CSSPath{
		Path:  append([]string(nil), path...),
		Value: make(map[string]string, len(value)),
	}
	for k, v := range value {
		p.Value[k] = v
	}
	return p
}

// Selector returns the structural group key of the path: tag names joined by
// " > ", followed by an attribute marker such as "[href]" when the node
// carries a non-empty value for attr.
func (p CSSPath) Selector(attr string) string {
	s := strings.Join(p.Path, PathSeparator)
	if attr != "" && p.Value[attr] != "" {
		s += "[" + attr + "]"
	}
	return s
}

// Key returns the value two paths are compared on for deduplication.
func (p CSSPath) Key(attr string) string {
	return p.Value[attr]
}
