package mock

import (
	"context"

	"github.com/fwojciec/beagle"
)

var _ beagle.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of beagle.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ beagle.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor is a mock implementation of beagle.MetaExtractor.
type MetaExtractor struct {
	ExtractMetaFn func(html string, pageURL string) (beagle.PageMeta, error)
}

func (e *MetaExtractor) ExtractMeta(html string, pageURL string) (beagle.PageMeta, error) {
	return e.ExtractMetaFn(html, pageURL)
}
