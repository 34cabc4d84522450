package scan

import "github.com/fwojciec/beagle"

// Ensure MetaChain implements beagle.MetaExtractor at compile time.
var _ beagle.MetaExtractor = MetaChain(nil)

// MetaChain asks each extractor in turn and keeps the first non-empty value
// of every field. Failing extractors are skipped; the chain only fails when
// all of them do.
type MetaChain []beagle.MetaExtractor

// ExtractMeta implements beagle.MetaExtractor.
func (c MetaChain) ExtractMeta(html, pageURL string) (beagle.PageMeta, error) {
	var meta beagle.PageMeta
	var firstErr error
	succeeded := false
	for _, e := range c {
		m, err := e.ExtractMeta(html, pageURL)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		succeeded = true
		if meta.Title == "" {
			meta.Title = m.Title
		}
		if meta.Image == "" {
			meta.Image = m.Image
		}
		if meta.Title != "" && meta.Image != "" {
			break
		}
	}
	if !succeeded && firstErr != nil {
		return beagle.PageMeta{}, firstErr
	}
	return meta, nil
}
