package scan

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/beagle"
)

// Ensure ProbeFetcher implements beagle.Fetcher at compile time.
var _ beagle.Fetcher = (*ProbeFetcher)(nil)

// ProbeFetcher chooses between a plain HTTP fetcher and a rendering fetcher
// per host. The first page of a host is fetched with both; if rendering
// exposes significantly more links the host is served by the renderer from
// then on.
//
// Decision flow:
//   - HTTP fetch fails → renderer
//   - renderer fails → HTTP
//   - renderer yields >50% more valid links → renderer
//   - otherwise → HTTP
type ProbeFetcher struct {
	HTTP   beagle.Fetcher
	Render beagle.Fetcher
	Paths  beagle.PathExtractor

	mu      sync.Mutex
	decided map[string]beagle.Fetcher
}

// NewProbeFetcher creates a ProbeFetcher.
func NewProbeFetcher(http, render beagle.Fetcher, paths beagle.PathExtractor) *ProbeFetcher {
	return &ProbeFetcher{
		HTTP:    http,
		Render:  render,
		Paths:   paths,
		decided: make(map[string]beagle.Fetcher),
	}
}

// Fetch fetches url with the fetcher chosen for its host.
func (f *ProbeFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", beagle.Errorf(beagle.EINVALID, "invalid URL %q", rawURL)
	}

	f.mu.Lock()
	chosen, ok := f.decided[u.Host]
	f.mu.Unlock()
	if ok {
		return chosen.Fetch(ctx, rawURL)
	}

	html, chosen, err := f.probe(ctx, rawURL)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.decided[u.Host] = chosen
	f.mu.Unlock()
	return html, nil
}

func (f *ProbeFetcher) probe(ctx context.Context, rawURL string) (string, beagle.Fetcher, error) {
	httpHTML, httpErr := f.HTTP.Fetch(ctx, rawURL)
	if httpErr != nil {
		html, err := f.Render.Fetch(ctx, rawURL)
		return html, f.Render, err
	}

	renderHTML, renderErr := f.Render.Fetch(ctx, rawURL)
	if renderErr != nil {
		return httpHTML, f.HTTP, nil
	}

	if LinksDiffer(httpHTML, renderHTML, rawURL, f.Paths) {
		return renderHTML, f.Render, nil
	}
	return httpHTML, f.HTTP, nil
}

// LinksDiffer reports whether the rendered page exposes more than 50% more
// valid links than the static one. Extraction errors on the static page
// count as a difference.
func LinksDiffer(staticHTML, renderedHTML, pageURL string, paths beagle.PathExtractor) bool {
	static, err := paths.ExtractPaths(staticHTML, pageURL, beagle.LinkSelector)
	if err != nil {
		return true
	}
	rendered, err := paths.ExtractPaths(renderedHTML, pageURL, beagle.LinkSelector)
	if err != nil {
		return false
	}

	if len(static) == 0 {
		return len(rendered) > 0
	}
	return float64(len(rendered)) > float64(len(static))*1.5
}

// Close closes both fetchers.
func (f *ProbeFetcher) Close() error {
	httpErr := f.HTTP.Close()
	renderErr := f.Render.Close()
	if httpErr != nil {
		return httpErr
	}
	return renderErr
}
