// Package trafilatura provides a beagle.MetaExtractor backed by go-trafilatura,
// which reads titles and preview images from meta tags, JSON-LD and the
// document body.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/beagle"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure MetaExtractor implements beagle.MetaExtractor at compile time.
var _ beagle.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor wraps go-trafilatura to read page metadata.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta returns the page title and preview image. A relative image is
// resolved against pageURL.
func (e *MetaExtractor) ExtractMeta(rawHTML string, pageURL string) (beagle.PageMeta, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return beagle.PageMeta{}, beagle.Errorf(beagle.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	base, err := url.Parse(pageURL)
	if err == nil && base.IsAbs() {
		opts.OriginalURL = base
	} else {
		base = nil
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return beagle.PageMeta{}, beagle.Errorf(beagle.EPARSE, "extract metadata: %v", err)
	}

	meta := beagle.PageMeta{
		Title: strings.TrimSpace(result.Metadata.Title),
		Image: strings.TrimSpace(result.Metadata.Image),
	}
	if meta.Image != "" && base != nil {
		meta.Image = beagle.ResolveURL(base, meta.Image)
	}
	return meta, nil
}
