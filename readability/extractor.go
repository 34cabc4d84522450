// Package readability provides a beagle.MetaExtractor backed by go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/beagle"
	"github.com/go-shiori/go-readability"
)

// Ensure MetaExtractor implements beagle.MetaExtractor at compile time.
var _ beagle.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor wraps go-readability to read page metadata.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta returns the article title and lead image of the page.
func (e *MetaExtractor) ExtractMeta(rawHTML string, pageURL string) (beagle.PageMeta, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return beagle.PageMeta{}, beagle.Errorf(beagle.EINVALID, "empty HTML input")
	}

	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() {
		return beagle.PageMeta{}, beagle.Errorf(beagle.EINVALID, "invalid page URL %q", pageURL)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return beagle.PageMeta{}, beagle.Errorf(beagle.EPARSE, "extract metadata: %v", err)
	}

	meta := beagle.PageMeta{
		Title: strings.TrimSpace(article.Title),
		Image: strings.TrimSpace(article.Image),
	}
	if meta.Image != "" {
		meta.Image = beagle.ResolveURL(base, meta.Image)
	}
	return meta, nil
}
