package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/beagle"
)

// Ensure MetaExtractor implements beagle.MetaExtractor at compile time.
var _ beagle.MetaExtractor = (*MetaExtractor)(nil)

// MetaExtractor reads the page title and representative image from
// OpenGraph/Twitter meta tags, falling back to <title> and the first image.
type MetaExtractor struct{}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

// ExtractMeta returns the page title and image. The image URL is resolved
// against pageURL.
func (e *MetaExtractor) ExtractMeta(rawHTML string, pageURL string) (beagle.PageMeta, error) {
	doc, err := Parse(rawHTML)
	if err != nil {
		return beagle.PageMeta{}, err
	}

	meta := beagle.PageMeta{
		Title: firstNonEmpty(
			metaContent(doc, `meta[property="og:title"]`),
			metaContent(doc, `meta[name="twitter:title"]`),
			strings.TrimSpace(doc.Find("title").First().Text()),
			strings.TrimSpace(doc.Find("h1").First().Text()),
		),
	}

	image := firstNonEmpty(
		metaContent(doc, `meta[property="og:image"]`),
		metaContent(doc, `meta[name="twitter:image"]`),
		attr(doc, `link[rel="image_src"]`, "href"),
		attr(doc, "img[src]", "src"),
	)
	if image != "" {
		if base, err := url.Parse(pageURL); err == nil && base.IsAbs() {
			image = beagle.ResolveURL(base, image)
		}
	}
	meta.Image = image

	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc, selector, "content")
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
