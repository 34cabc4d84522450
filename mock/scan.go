package mock

import (
	"context"

	"github.com/fwojciec/beagle"
)

var _ beagle.ScanService = (*ScanService)(nil)

// ScanService is a mock implementation of beagle.ScanService.
type ScanService struct {
	FetchAllFn func(ctx context.Context, url string) (*beagle.FetchAllResult, error)
	FetchOneFn func(ctx context.Context, url, selector, before string) (*beagle.FetchOneResult, error)
}

func (s *ScanService) FetchAll(ctx context.Context, url string) (*beagle.FetchAllResult, error) {
	return s.FetchAllFn(ctx, url)
}

func (s *ScanService) FetchOne(ctx context.Context, url, selector, before string) (*beagle.FetchOneResult, error) {
	return s.FetchOneFn(ctx, url, selector, before)
}

var _ beagle.PathExtractor = (*PathExtractor)(nil)

// PathExtractor is a mock implementation of beagle.PathExtractor.
type PathExtractor struct {
	ExtractPathsFn func(html, baseURL, selector string) ([]beagle.CSSPath, error)
}

func (e *PathExtractor) ExtractPaths(html, baseURL, selector string) ([]beagle.CSSPath, error) {
	return e.ExtractPathsFn(html, baseURL, selector)
}
