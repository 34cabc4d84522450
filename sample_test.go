package beagle_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/beagle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listPath = []string{"html", "body", "div", "div", "div", "ul", "li", "a"}

const listSelector = "html > body > div > div > div > ul > li > a[href]"

func link(path []string, href string) beagle.CSSPath {
	return beagle.NewCSSPath(path, map[string]string{beagle.AttrHref: href})
}

// listingPaths returns 18 list links interleaved with navigation links.
func listingPaths() []beagle.CSSPath {
	nav := []string{"html", "body", "nav", "a"}
	footer := []string{"html", "body", "footer", "p", "a"}

	var paths []beagle.CSSPath
	paths = append(paths, link(nav, "https://example.com/"), link(nav, "https://example.com/about"))
	for i := 1; i <= 18; i++ {
		paths = append(paths, link(listPath, fmt.Sprintf("https://example.com/item/%d", i)))
		if i%6 == 0 {
			paths = append(paths, link(footer, "https://example.com/contact"))
		}
	}
	return paths
}

func TestFromPaths(t *testing.T) {
	t.Parallel()

	t.Run("builds one sample per path", func(t *testing.T) {
		t.Parallel()

		list := beagle.FromPaths([]beagle.CSSPath{link(listPath, "https://example.com/item/1")}, beagle.AttrHref)

		require.Equal(t, 1, list.Len())
		s := list.Samples()[0]
		assert.Equal(t, listSelector, s.Selector)
		assert.Equal(t, []string{"https://example.com/item/1"}, s.SampleURL)
	})

	t.Run("paths without the attribute have no values", func(t *testing.T) {
		t.Parallel()

		p := beagle.NewCSSPath([]string{"html", "a"}, nil)
		list := beagle.FromPaths([]beagle.CSSPath{p}, beagle.AttrHref)

		require.Equal(t, 1, list.Len())
		assert.Equal(t, "html > a", list.Samples()[0].Selector)
		assert.Empty(t, list.Samples()[0].SampleURL)
	})
}

func TestSampleList_GroupBy(t *testing.T) {
	t.Parallel()

	t.Run("merges samples sharing a selector in first-seen order", func(t *testing.T) {
		t.Parallel()

		groups := beagle.FromPaths(listingPaths(), beagle.AttrHref).GroupBy(beagle.BySelector).Samples()

		require.Len(t, groups, 3)
		assert.Equal(t, "html > body > nav > a[href]", groups[0].Selector)
		assert.Equal(t, listSelector, groups[1].Selector)
		assert.Len(t, groups[1].SampleURL, 18)
		assert.Equal(t, "https://example.com/item/1", groups[1].SampleURL[0])
		assert.Equal(t, "https://example.com/item/18", groups[1].SampleURL[17])
		assert.Equal(t, "html > body > footer > p > a[href]", groups[2].Selector)
		assert.Len(t, groups[2].SampleURL, 3)
	})

	t.Run("every grouped value re-extracts to its group selector", func(t *testing.T) {
		t.Parallel()

		paths := listingPaths()
		groups := beagle.FromPaths(paths, beagle.AttrHref).GroupBy(beagle.BySelector).Samples()

		selectorOf := make(map[string]string)
		for _, p := range paths {
			selectorOf[p.Key(beagle.AttrHref)] = p.Selector(beagle.AttrHref)
		}
		for _, g := range groups {
			for _, v := range g.SampleURL {
				assert.Equal(t, g.Selector, selectorOf[v])
			}
		}
	})

	t.Run("does not modify the receiver", func(t *testing.T) {
		t.Parallel()

		list := beagle.FromPaths(listingPaths(), beagle.AttrHref)
		before := list.Len()
		_ = list.GroupBy(beagle.BySelector)

		assert.Equal(t, before, list.Len())
	})
}

func TestSampleList_Distinct(t *testing.T) {
	t.Parallel()

	t.Run("removes repeated values keeping first occurrence", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(beagle.Sample{Selector: "a", SampleURL: []string{"x", "y", "x", "z", "y"}})

		assert.Equal(t, []string{"x", "y", "z"}, list.Distinct().Samples()[0].SampleURL)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "a", SampleURL: []string{"x", "x", "y"}},
			beagle.Sample{Selector: "b", SampleURL: []string{"z", "z"}},
		)

		once := list.Distinct()
		assert.Equal(t, once.Samples(), once.Distinct().Samples())
	})

	t.Run("does not modify the receiver", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(beagle.Sample{Selector: "a", SampleURL: []string{"x", "x"}})
		_ = list.Distinct()

		assert.Equal(t, []string{"x", "x"}, list.Samples()[0].SampleURL)
	})
}

func TestSampleList_Unique(t *testing.T) {
	t.Parallel()

	t.Run("drops a group whose values are a subset of another", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "img-link", SampleURL: []string{"1", "2"}},
			beagle.Sample{Selector: "text-link", SampleURL: []string{"1", "2", "3"}},
		)

		got := list.Unique().Samples()
		require.Len(t, got, 1)
		assert.Equal(t, "text-link", got[0].Selector)
	})

	t.Run("keeps the first of two identical groups", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "first", SampleURL: []string{"1", "2"}},
			beagle.Sample{Selector: "second", SampleURL: []string{"2", "1"}},
		)

		got := list.Unique().Samples()
		require.Len(t, got, 1)
		assert.Equal(t, "first", got[0].Selector)
	})

	t.Run("keeps overlapping groups that are not dominated", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "a", SampleURL: []string{"1", "2"}},
			beagle.Sample{Selector: "b", SampleURL: []string{"2", "3"}},
		)

		assert.Equal(t, 2, list.Unique().Len())
	})

	t.Run("never increases group count and every dropped group is dominated by a kept one", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "a", SampleURL: []string{"1"}},
			beagle.Sample{Selector: "b", SampleURL: []string{"1", "2"}},
			beagle.Sample{Selector: "c", SampleURL: []string{"1", "2", "3"}},
			beagle.Sample{Selector: "d", SampleURL: []string{"4"}},
			beagle.Sample{Selector: "e", SampleURL: []string{"4"}},
		)

		unique := list.Unique()
		assert.LessOrEqual(t, unique.Len(), list.Len())

		kept := make(map[string]beagle.Sample)
		for _, s := range unique.Samples() {
			kept[s.Selector] = s
		}
		assert.Contains(t, kept, "c")
		assert.Contains(t, kept, "d")
		assert.Len(t, kept, 2)

		for _, s := range list.Samples() {
			if _, ok := kept[s.Selector]; ok {
				continue
			}
			dominatedByKept := false
			for _, k := range kept {
				if isSubset(s.SampleURL, k.SampleURL) {
					dominatedByKept = true
				}
			}
			assert.True(t, dominatedByKept, "group %s removed without a dominating group", s.Selector)
		}
	})
}

func isSubset(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	for _, v := range a {
		if !set[v] {
			return false
		}
	}
	return true
}

func TestSampleList_OrderByDesc(t *testing.T) {
	t.Parallel()

	t.Run("orders by length without a heuristic", func(t *testing.T) {
		t.Parallel()

		groups := beagle.FromPaths(listingPaths(), beagle.AttrHref).
			GroupBy(beagle.BySelector).
			OrderByDesc(beagle.LengthRanker{}).
			Samples()

		for i := 0; i < len(groups)-1; i++ {
			assert.GreaterOrEqual(t, len(groups[i].SampleURL), len(groups[i+1].SampleURL))
		}
		assert.Equal(t, listSelector, groups[0].Selector)
	})

	t.Run("is stable for equal scores", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "a", SampleURL: []string{"1"}},
			beagle.Sample{Selector: "b", SampleURL: []string{"1", "2"}},
			beagle.Sample{Selector: "c", SampleURL: []string{"3"}},
			beagle.Sample{Selector: "d", SampleURL: []string{"4", "5"}},
		)

		got := list.OrderByDesc(nil).Samples()
		var order []string
		for _, s := range got {
			order = append(order, s.Selector)
		}
		assert.Equal(t, []string{"b", "d", "a", "c"}, order)
	})

	t.Run("uses the supplied ranking strategy", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(
			beagle.Sample{Selector: "long", SampleURL: []string{"1", "2", "3"}},
			beagle.Sample{Selector: "preferred", SampleURL: []string{"4"}},
		)
		ranker := beagle.RankerFunc(func(s beagle.Sample) float64 {
			if s.Selector == "preferred" {
				return 10
			}
			return 1
		})

		assert.Equal(t, "preferred", list.OrderByDesc(ranker).Samples()[0].Selector)
	})
}

func TestSampleList_TakeSample(t *testing.T) {
	t.Parallel()

	list := beagle.NewSampleList(
		beagle.Sample{Selector: "a"},
		beagle.Sample{Selector: "b"},
		beagle.Sample{Selector: "c"},
	)

	assert.Equal(t, 1, list.TakeSample(1).Len())
	assert.Equal(t, "a", list.TakeSample(1).Samples()[0].Selector)
	assert.Equal(t, 3, list.TakeSample(10).Len())
	assert.Equal(t, 0, list.TakeSample(-1).Len())
}

func TestSampleList_Take(t *testing.T) {
	t.Parallel()

	t.Run("caps every group to n values", func(t *testing.T) {
		t.Parallel()

		groups := beagle.FromPaths(listingPaths(), beagle.AttrHref).GroupBy(beagle.BySelector)

		for _, n := range []int{1, 4, 10} {
			for _, s := range groups.Take(0, n).Samples() {
				assert.LessOrEqual(t, len(s.SampleURL), n)
			}
		}
	})

	t.Run("returns short groups unchanged", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(beagle.Sample{Selector: "a", SampleURL: []string{"1", "2"}})

		assert.Equal(t, []string{"1", "2"}, list.Take(0, 10).Samples()[0].SampleURL)
	})

	t.Run("slices a window", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(beagle.Sample{Selector: "a", SampleURL: []string{"1", "2", "3", "4"}})

		assert.Equal(t, []string{"2", "3"}, list.Take(1, 3).Samples()[0].SampleURL)
		assert.Empty(t, list.Take(3, 1).Samples()[0].SampleURL)
		assert.Empty(t, list.Take(8, 9).Samples()[0].SampleURL)
	})
}

func TestSampleList_TakeBefore(t *testing.T) {
	t.Parallel()

	list := beagle.NewSampleList(beagle.Sample{Selector: "a", SampleURL: []string{"1", "2", "3", "2"}})

	t.Run("keeps values before the first occurrence", func(t *testing.T) {
		t.Parallel()

		got, ok := list.TakeBefore("2")

		require.True(t, ok)
		assert.Equal(t, []string{"1"}, got.Samples()[0].SampleURL)
	})

	t.Run("reports a missing value", func(t *testing.T) {
		t.Parallel()

		got, ok := list.TakeBefore("9")

		assert.False(t, ok)
		assert.Equal(t, list.Samples(), got.Samples())
	})

	t.Run("first value yields an empty prefix", func(t *testing.T) {
		t.Parallel()

		got, ok := list.TakeBefore("1")

		require.True(t, ok)
		assert.Empty(t, got.Samples()[0].SampleURL)
	})
}

func TestSampleList_Merge(t *testing.T) {
	t.Parallel()

	list := beagle.NewSampleList(
		beagle.Sample{Selector: "a", SampleURL: []string{"1", "2"}},
		beagle.Sample{Selector: "b", SampleURL: []string{"3"}},
	)

	got := list.Merge("sel").Samples()

	require.Len(t, got, 1)
	assert.Equal(t, "sel", got[0].Selector)
	assert.Equal(t, []string{"1", "2", "3"}, got[0].SampleURL)
}

func TestSampleList_ResolveRelativeURL(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative values", func(t *testing.T) {
		t.Parallel()

		list := beagle.NewSampleList(beagle.Sample{Selector: "test", SampleURL: []string{"test", "/root", "//cdn.example.com/x", "?page=2"}})

		got, err := list.ResolveRelativeURL("http://test.com/dir/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"http://test.com/dir/test",
			"http://test.com/root",
			"http://cdn.example.com/x",
			"http://test.com/dir/?page=2",
		}, got.Samples()[0].SampleURL)
	})

	t.Run("leaves absolute values unchanged", func(t *testing.T) {
		t.Parallel()

		abs := "https://other.example.com/a/b?c=d#e"
		list := beagle.NewSampleList(beagle.Sample{Selector: "test", SampleURL: []string{abs}})

		got, err := list.ResolveRelativeURL("http://test.com/")

		require.NoError(t, err)
		assert.Equal(t, abs, got.Samples()[0].SampleURL[0])
	})

	t.Run("rejects a relative base", func(t *testing.T) {
		t.Parallel()

		_, err := beagle.NewSampleList().ResolveRelativeURL("/relative")

		assert.Equal(t, beagle.EINVALID, beagle.ErrorCode(err))
	})
}
