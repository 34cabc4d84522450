// Package goquery implements structural link scanning over goquery documents.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/beagle"
	"golang.org/x/net/html"
)

// Parse reads HTML into a queryable document.
func Parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, beagle.Errorf(beagle.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Node is one matched element together with its href before and after
// resolution.
type Node struct {
	node *html.Node

	// RawHref is the href attribute as written in the document.
	RawHref string

	// Href is RawHref resolved against the page URL. It equals RawHref until
	// the instance has been resolved.
	Href string
}

// Instance is the set of nodes matched by a selector. Resolve and Filter
// return new instances and leave the receiver untouched.
type Instance struct {
	doc   *goquery.Document
	nodes []Node
}

// FromDocument runs selector against doc. A selector that is invalid or
// matches nothing yields an empty instance.
func FromDocument(doc *goquery.Document, selector string) *Instance {
	inst := &Instance{doc: doc}
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		inst.nodes = append(inst.nodes, Node{
			node:    sel.Get(0),
			RawHref: href,
			Href:    href,
		})
	})
	return inst
}

// Len returns the number of matched nodes.
func (inst *Instance) Len() int {
	return len(inst.nodes)
}

// Nodes returns a copy of the matched nodes.
func (inst *Instance) Nodes() []Node {
	return append([]Node(nil), inst.nodes...)
}

// Resolve rewrites every href as an absolute URL. The document's <base href>
// takes precedence over baseURL when present, itself resolved against
// baseURL. Hrefs that cannot be parsed are left as written.
func (inst *Instance) Resolve(baseURL string) (*Instance, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, beagle.Errorf(beagle.EINVALID, "invalid base URL %q", baseURL)
	}
	if docBase, ok := inst.doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(docBase)); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	out := &Instance{doc: inst.doc, nodes: make([]Node, len(inst.nodes))}
	for i, n := range inst.nodes {
		n.Href = beagle.ResolveURL(base, strings.TrimSpace(n.RawHref))
		out.nodes[i] = n
	}
	return out, nil
}

// Predicate reports whether a node should be kept.
type Predicate func(n Node) bool

// ValidHref keeps nodes whose href is usable as a sample: it rejects empty
// and fragment-only hrefs and anything that does not resolve to http(s).
func ValidHref(n Node) bool {
	raw := strings.TrimSpace(n.RawHref)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return false
	}
	u, err := url.Parse(n.Href)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// SameHost returns a predicate keeping nodes that resolve to the host of
// baseURL. It keeps nothing when baseURL cannot be parsed.
func SameHost(baseURL string) Predicate {
	base, err := url.Parse(baseURL)
	return func(n Node) bool {
		if err != nil {
			return false
		}
		u, err := url.Parse(n.Href)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, base.Host)
	}
}

// Filter keeps the nodes accepted by every predicate.
func (inst *Instance) Filter(preds ...Predicate) *Instance {
	out := &Instance{doc: inst.doc}
	for _, n := range inst.nodes {
		keep := true
		for _, pred := range preds {
			if !pred(n) {
				keep = false
				break
			}
		}
		if keep {
			out.nodes = append(out.nodes, n)
		}
	}
	return out
}

// Paths returns the structural path and extracted values of every node in
// document order.
func (inst *Instance) Paths() []beagle.CSSPath {
	paths := make([]beagle.CSSPath, 0, len(inst.nodes))
	for _, n := range inst.nodes {
		value := make(map[string]string)
		if n.Href != "" {
			value[beagle.AttrHref] = n.Href
		}
		sel := goquery.NewDocumentFromNode(n.node).Selection
		if src, ok := sel.Attr("src"); ok && src != "" {
			value[beagle.AttrSrc] = src
		} else if src, ok := sel.Find("img[src]").First().Attr("src"); ok && src != "" {
			value[beagle.AttrSrc] = src
		}
		if text := strings.Join(strings.Fields(sel.Text()), " "); text != "" {
			value[beagle.AttrText] = text
		}
		paths = append(paths, beagle.NewCSSPath(tagPath(n.node), value))
	}
	return paths
}

// tagPath lists element names from the document root down to n.
func tagPath(n *html.Node) []string {
	var path []string
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode {
			path = append(path, cur.Data)
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Ensure Scanner implements beagle.PathExtractor at compile time.
var _ beagle.PathExtractor = (*Scanner)(nil)

// Scanner extracts link paths from raw HTML.
type Scanner struct {
	// SameHostOnly drops links leaving the host of the scanned page.
	SameHostOnly bool
}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// ExtractPaths parses html, runs selector, resolves hrefs against baseURL
// and drops invalid hrefs.
func (s *Scanner) ExtractPaths(rawHTML, baseURL, selector string) ([]beagle.CSSPath, error) {
	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}
	inst, err := FromDocument(doc, selector).Resolve(baseURL)
	if err != nil {
		return nil, err
	}
	preds := []Predicate{ValidHref}
	if s.SameHostOnly {
		preds = append(preds, SameHost(baseURL))
	}
	return inst.Filter(preds...).Paths(), nil
}
