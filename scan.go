package beagle

import "context"

// LinkSelector matches every anchor carrying an href.
const LinkSelector = "a[href]"

// FetchAllResult is the best-guess content list of a page.
type FetchAllResult struct {
	// Selector is the structural selector of the top group. Empty when the
	// page has no usable links.
	Selector string `json:"selector"`

	// SampleURL holds the first values of the top group.
	SampleURL []string `json:"sampleUrl"`

	Meta PageMeta `json:"meta"`
}

// FetchOneResult lists the values matched by an exact selector.
type FetchOneResult struct {
	SampleURL []string `json:"sampleUrl"`

	// IsSelectorEmpty is set when the selector matched nothing.
	IsSelectorEmpty bool `json:"isSelectorEmpty"`

	// IsSampleURLNotFound is set when a cursor was given but is absent from
	// the matches. SampleURL then holds the full capped list. It is also set
	// alongside IsSelectorEmpty when a cursor was given and nothing matched.
	IsSampleURLNotFound bool `json:"isSampleUrlNotFound"`
}

// ScanService discovers repeating link groups on pages.
type ScanService interface {
	// FetchAll fetches the page and returns its top-ranked link group.
	// Returns EFETCH or EPARSE when the page cannot be fetched or parsed.
	FetchAll(ctx context.Context, url string) (*FetchAllResult, error)

	// FetchOne replays an exact selector against the page. When before is
	// non-empty only the values preceding its first occurrence are returned.
	// Empty matches and a missing cursor are reported as flags, not errors.
	FetchOne(ctx context.Context, url, selector, before string) (*FetchOneResult, error)
}

// PathExtractor runs a selector against HTML and returns the matched nodes
// as CSSPath values with hrefs resolved against baseURL. Invalid hrefs are
// dropped. A selector that matches nothing yields no paths and no error.
type PathExtractor interface {
	ExtractPaths(html, baseURL, selector string) ([]CSSPath, error)
}
