// Package scan composes fetching, structural extraction and sample ranking
// into the FetchAll and FetchOne operations.
package scan

import (
	"context"
	"log/slog"

	"github.com/fwojciec/beagle"
)

// Default output caps.
const (
	DefaultAllLimit = 10
	DefaultOneLimit = 20
)

// Ensure Service implements beagle.ScanService at compile time.
var _ beagle.ScanService = (*Service)(nil)

// RankerFactory builds the ranking strategy for a page.
type RankerFactory func(pageURL string, meta beagle.PageMeta) beagle.Ranker

// ByLength ranks groups by size regardless of the page.
func ByLength(string, beagle.PageMeta) beagle.Ranker {
	return beagle.LengthRanker{}
}

// Service implements beagle.ScanService. Each call builds and discards its
// own sample pipeline, so a Service is safe for concurrent use as long as
// its collaborators are.
type Service struct {
	Fetcher beagle.Fetcher
	Paths   beagle.PathExtractor

	// Meta is optional. Metadata failures degrade to empty values.
	Meta beagle.MetaExtractor

	// Ranker selects the ranking strategy for FetchAll. Defaults to ByLength.
	Ranker RankerFactory

	AllLimit int
	OneLimit int

	Logger *slog.Logger
}

// FetchAll fetches url and returns its top-ranked link group.
func (s *Service) FetchAll(ctx context.Context, url string) (*beagle.FetchAllResult, error) {
	html, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	paths, err := s.Paths.ExtractPaths(html, url, beagle.LinkSelector)
	if err != nil {
		return nil, err
	}

	meta := s.meta(html, url)

	rank := s.Ranker
	if rank == nil {
		rank = ByLength
	}

	top := beagle.FromPaths(paths, beagle.AttrHref).
		GroupBy(beagle.BySelector).
		Distinct().
		OrderByDesc(rank(url, meta)).
		Unique().
		TakeSample(1).
		Take(0, limit(s.AllLimit, DefaultAllLimit)).
		Samples()

	result := &beagle.FetchAllResult{
		SampleURL: []string{},
		Meta:      meta,
	}
	if len(top) > 0 {
		result.Selector = top[0].Selector
		if top[0].SampleURL != nil {
			result.SampleURL = top[0].SampleURL
		}
	}
	return result, nil
}

// FetchOne replays selector against url. When before is set, only the
// values preceding its first occurrence are returned; if it is absent the
// full capped list is returned with IsSampleURLNotFound set. A selector
// matching nothing with a cursor given sets both flags.
func (s *Service) FetchOne(ctx context.Context, url, selector, before string) (*beagle.FetchOneResult, error) {
	html, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	paths, err := s.Paths.ExtractPaths(html, url, selector)
	if err != nil {
		return nil, err
	}

	// Values stay in document order even when the selector matches nodes
	// with different tag paths.
	list := beagle.FromPaths(paths, beagle.AttrHref).
		Merge(selector).
		Distinct().
		Take(0, limit(s.OneLimit, DefaultOneLimit))

	result := &beagle.FetchOneResult{}
	if len(list.Values()) == 0 {
		result.IsSelectorEmpty = true
	}

	if before != "" {
		if prefix, ok := list.TakeBefore(before); ok {
			list = prefix
		} else {
			result.IsSampleURLNotFound = true
		}
	}

	result.SampleURL = list.Values()
	if result.SampleURL == nil {
		result.SampleURL = []string{}
	}
	return result, nil
}

func (s *Service) fetch(ctx context.Context, url string) (string, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		switch beagle.ErrorCode(err) {
		case beagle.EFETCH, beagle.EPARSE, beagle.EINVALID:
			return "", err
		}
		return "", beagle.Errorf(beagle.EFETCH, "failed to fetch %s: %v", url, err)
	}
	return html, nil
}

func (s *Service) meta(html, url string) beagle.PageMeta {
	if s.Meta == nil {
		return beagle.PageMeta{}
	}
	meta, err := s.Meta.ExtractMeta(html, url)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Debug("page meta unavailable", "url", url, "err", err)
		}
		return beagle.PageMeta{}
	}
	return meta
}

func limit(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
