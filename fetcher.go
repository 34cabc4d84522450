package beagle

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch downloads the URL and returns the page HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// PageMeta holds best-effort metadata describing a page.
// Empty fields are an acceptable degraded result.
type PageMeta struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// MetaExtractor reads page metadata from HTML.
type MetaExtractor interface {
	// ExtractMeta returns the page title and representative image.
	// Relative image URLs are resolved against pageURL.
	ExtractMeta(html string, pageURL string) (PageMeta, error)
}
