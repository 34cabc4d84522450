package beagle

import (
	"net/url"
	"sort"
)

// Sample is a group of extracted values sharing one structural selector.
type Sample struct {
	// Selector identifies the group, e.g. "html > body > ul > li > a[href]".
	Selector string `json:"selector"`

	// SampleURL lists the group's values in document order.
	SampleURL []string `json:"sampleUrl"`
}

func (s Sample) clone() Sample {
	return Sample{
		Selector:  s.Selector,
		SampleURL: append([]string(nil), s.SampleURL...),
	}
}

// set returns the distinct values of the sample.
func (s Sample) set() map[string]struct{} {
	m := make(map[string]struct{}, len(s.SampleURL))
	for _, v := range s.SampleURL {
		m[v] = struct{}{}
	}
	return m
}

// SampleList is an ordered collection of samples transformed through a pure
// pipeline. Every method returns a new SampleList; the receiver is never
// modified and never shares backing arrays with the result.
type SampleList struct {
	samples []Sample
}

// NewSampleList returns a list holding copies of samples.
func NewSampleList(samples ...Sample) SampleList {
	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = s.clone()
	}
	return SampleList{samples: out}
}

// FromPaths builds the initial list from raw scan matches, one sample per
// path. The attr argument names the extraction target that becomes the
// sample value and the selector's attribute marker. Paths without a value
// for attr yield samples with no values.
func FromPaths(paths []CSSPath, attr string) SampleList {
	samples := make([]Sample, 0, len(paths))
	for _, p := range paths {
		s := Sample{Selector: p.Selector(attr)}
		if v := p.Key(attr); v != "" {
			s.SampleURL = []string{v}
		}
		samples = append(samples, s)
	}
	return SampleList{samples: samples}
}

// Samples returns a copy of the samples in the list.
func (l SampleList) Samples() []Sample {
	return NewSampleList(l.samples...).samples
}

// Len returns the number of samples in the list.
func (l SampleList) Len() int {
	return len(l.samples)
}

// Values returns every sample value in list order.
func (l SampleList) Values() []string {
	var out []string
	for _, s := range l.samples {
		out = append(out, s.SampleURL...)
	}
	return out
}

// GroupKey derives the grouping key of a sample.
type GroupKey func(Sample) string

// BySelector groups samples by their structural selector.
func BySelector(s Sample) string {
	return s.Selector
}

// GroupBy merges samples sharing the same key. Groups appear in first-seen
// order and keep their values in discovery order. The merged sample takes the
// selector of the first sample in its group.
func (l SampleList) GroupBy(key GroupKey) SampleList {
	index := make(map[string]int)
	var out []Sample
	for _, s := range l.samples {
		k := key(s)
		if i, ok := index[k]; ok {
			out[i].SampleURL = append(out[i].SampleURL, s.SampleURL...)
			continue
		}
		index[k] = len(out)
		out = append(out, s.clone())
	}
	return SampleList{samples: out}
}

// Distinct removes repeated values within each sample, keeping the first
// occurrence.
func (l SampleList) Distinct() SampleList {
	out := make([]Sample, len(l.samples))
	for i, s := range l.samples {
		seen := make(map[string]struct{}, len(s.SampleURL))
		d := Sample{Selector: s.Selector}
		for _, v := range s.SampleURL {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			d.SampleURL = append(d.SampleURL, v)
		}
		out[i] = d
	}
	return SampleList{samples: out}
}

// Unique removes samples that are redundant across the list. A sample is
// dropped when another sample's value set strictly contains its own, or when
// an earlier sample has exactly the same value set.
func (l SampleList) Unique() SampleList {
	sets := make([]map[string]struct{}, len(l.samples))
	for i, s := range l.samples {
		sets[i] = s.set()
	}

	var out []Sample
	for i, s := range l.samples {
		if dominated(i, sets) {
			continue
		}
		out = append(out, s.clone())
	}
	return SampleList{samples: out}
}

func dominated(i int, sets []map[string]struct{}) bool {
	for j := range sets {
		if j == i || !subset(sets[i], sets[j]) {
			continue
		}
		if len(sets[j]) > len(sets[i]) || j < i {
			return true
		}
	}
	return false
}

// subset reports whether a is a subset of b.
func subset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}

// OrderByDesc sorts samples by the ranker's score, highest first. Samples
// with equal scores keep their relative order.
func (l SampleList) OrderByDesc(r Ranker) SampleList {
	if r == nil {
		r = LengthRanker{}
	}
	type scored struct {
		sample Sample
		score  float64
	}
	ss := make([]scored, len(l.samples))
	for i, s := range l.samples {
		ss[i] = scored{sample: s.clone(), score: r.Score(s)}
	}
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].score > ss[j].score
	})

	out := make([]Sample, len(ss))
	for i, s := range ss {
		out[i] = s.sample
	}
	return SampleList{samples: out}
}

// TakeSample keeps at most the first n samples.
func (l SampleList) TakeSample(n int) SampleList {
	if n < 0 {
		n = 0
	}
	if n > len(l.samples) {
		n = len(l.samples)
	}
	return NewSampleList(l.samples[:n]...)
}

// Take slices every sample's values to the window [from, to). Bounds are
// clamped to the sample length.
func (l SampleList) Take(from, to int) SampleList {
	out := make([]Sample, len(l.samples))
	for i, s := range l.samples {
		lo, hi := clamp(from, len(s.SampleURL)), clamp(to, len(s.SampleURL))
		if hi < lo {
			hi = lo
		}
		out[i] = Sample{
			Selector:  s.Selector,
			SampleURL: append([]string(nil), s.SampleURL[lo:hi]...),
		}
	}
	return SampleList{samples: out}
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// TakeBefore slices every sample containing value to the values strictly
// before its first occurrence. Samples without value are kept unchanged.
// The boolean result is false, and the list returned unchanged, when no
// sample contains value.
func (l SampleList) TakeBefore(value string) (SampleList, bool) {
	found := false
	out := make([]Sample, len(l.samples))
	for i, s := range l.samples {
		out[i] = s.clone()
		for j, v := range s.SampleURL {
			if v == value {
				out[i].SampleURL = out[i].SampleURL[:j]
				found = true
				break
			}
		}
	}
	if !found {
		return NewSampleList(l.samples...), false
	}
	return SampleList{samples: out}, true
}

// Merge concatenates every sample into a single sample with the given
// selector. An empty list merges into a sample with no values.
func (l SampleList) Merge(selector string) SampleList {
	return SampleList{samples: []Sample{{
		Selector:  selector,
		SampleURL: l.Values(),
	}}}
}

// ResolveRelativeURL rewrites every value as an absolute URL resolved against
// base. Values that are already absolute are returned unchanged; values that
// cannot be parsed are kept as-is.
func (l SampleList) ResolveRelativeURL(base string) (SampleList, error) {
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return SampleList{}, Errorf(EINVALID, "invalid base URL %q", base)
	}

	out := make([]Sample, len(l.samples))
	for i, s := range l.samples {
		r := Sample{Selector: s.Selector, SampleURL: make([]string, len(s.SampleURL))}
		for j, v := range s.SampleURL {
			r.SampleURL[j] = ResolveURL(b, v)
		}
		out[i] = r
	}
	return SampleList{samples: out}, nil
}

// ResolveURL resolves href against base. Absolute hrefs are returned
// unchanged and unparsable hrefs are returned as given.
func ResolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}
