// Package matchr ranks sample groups by how much they look like a page's
// main content list, using string similarity from github.com/antzucaro/matchr.
package matchr

import (
	"math"
	"net/url"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/fwojciec/beagle"
)

// Ensure Ranker implements beagle.Ranker at compile time.
var _ beagle.Ranker = (*Ranker)(nil)

// Ranker scores groups against the page they were found on. Content lists
// tend to be big, share a path prefix, look alike and live on the page's own
// host; navigation links are short, unrelated paths.
//
//	score = log2(1+n) * (1+prefix) * (0.5+0.5*homogeneity) * (0.5+0.5*sameHost)
type Ranker struct {
	host string
}

// NewRanker returns a Ranker for groups found on pageURL.
func NewRanker(pageURL string) *Ranker {
	r := &Ranker{}
	if u, err := url.Parse(pageURL); err == nil {
		r.host = strings.ToLower(u.Host)
	}
	return r
}

// Score returns the plausibility of s being the page's content list.
func (r *Ranker) Score(s beagle.Sample) float64 {
	n := len(s.SampleURL)
	if n == 0 {
		return 0
	}

	urls := make([]*url.URL, 0, n)
	onHost := 0
	for _, v := range s.SampleURL {
		u, err := url.Parse(v)
		if err != nil {
			u = &url.URL{}
		}
		if r.host != "" && strings.EqualFold(u.Host, r.host) {
			onHost++
		}
		urls = append(urls, u)
	}
	sameHost := 1.0
	if r.host != "" {
		sameHost = float64(onHost) / float64(n)
	}

	return math.Log2(1+float64(n)) *
		(1 + float64(PrefixDepth(urls))) *
		(0.5 + 0.5*Homogeneity(urls)) *
		(0.5 + 0.5*sameHost)
}

// PrefixDepth returns the number of leading path segments shared by every
// URL, capped so that at least one segment of the shortest path remains
// distinct. Fewer than two URLs share no prefix.
func PrefixDepth(urls []*url.URL) int {
	if len(urls) < 2 {
		return 0
	}
	prefix := segments(urls[0])
	shortest := len(prefix)
	for _, u := range urls[1:] {
		segs := segments(u)
		if len(segs) < shortest {
			shortest = len(segs)
		}
		i := 0
		for i < len(prefix) && i < len(segs) && prefix[i] == segs[i] {
			i++
		}
		prefix = prefix[:i]
	}
	depth := len(prefix)
	if depth > shortest-1 {
		depth = shortest - 1
	}
	if depth < 0 {
		depth = 0
	}
	return depth
}

// Homogeneity returns the mean Jaro-Winkler similarity between the request
// URIs of consecutive URLs, in [0, 1]. Fewer than two URLs score 0.
func Homogeneity(urls []*url.URL) float64 {
	if len(urls) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(urls); i++ {
		sum += matchr.JaroWinkler(urls[i-1].RequestURI(), urls[i].RequestURI(), false)
	}
	return sum / float64(len(urls)-1)
}

func segments(u *url.URL) []string {
	var segs []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
