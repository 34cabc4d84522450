package scan

import (
	"context"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/beagle"
	"golang.org/x/sync/errgroup"
)

// CheckResult reports the outcome of checking one source.
type CheckResult struct {
	Source *beagle.Source

	// NewSampleURL lists items seen for the first time, newest first.
	NewSampleURL []string

	// IsSelectorEmpty is set when the stored selector no longer matches.
	IsSelectorEmpty bool

	// Err is set when the page could not be scanned.
	Err error
}

// Watcher replays stored selectors to find new items on listing pages.
// The cursor of a source is the first item returned by its last check;
// everything before it on the next check is new.
type Watcher struct {
	Scanner beagle.ScanService
	Sources beagle.SourceService
}

// Check scans one source and advances its cursor. When the cursor is no
// longer on the page (first check, or more new items than the page shows)
// every item is reported as new.
func (w *Watcher) Check(ctx context.Context, source *beagle.Source) (*CheckResult, error) {
	res, err := w.Scanner.FetchOne(ctx, source.URL, source.Selector, source.LastSampleURL)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Source:          source,
		NewSampleURL:    res.SampleURL,
		IsSelectorEmpty: res.IsSelectorEmpty,
	}
	if res.IsSelectorEmpty {
		return result, nil
	}

	// A found cursor only returned the prefix; fetch the full list to hash
	// and to pick the new cursor.
	current := res.SampleURL
	if source.LastSampleURL != "" && !res.IsSampleURLNotFound {
		full, err := w.Scanner.FetchOne(ctx, source.URL, source.Selector, "")
		if err != nil {
			return nil, err
		}
		current = full.SampleURL
	}

	hash := SamplesHash(current)
	if hash == source.SamplesHash || len(current) == 0 {
		return result, nil
	}

	cursor := current[0]
	updated, err := w.Sources.UpdateSource(ctx, source.ID, beagle.SourceUpdate{
		LastSampleURL: &cursor,
		SamplesHash:   &hash,
	})
	if err != nil {
		return nil, err
	}
	result.Source = updated
	return result, nil
}

// CheckAll checks sources concurrently. A failing source records its error
// in its result and does not stop the others. Results keep the order of
// sources.
func (w *Watcher) CheckAll(ctx context.Context, sources []*beagle.Source, concurrency int) []*CheckResult {
	if concurrency <= 0 {
		concurrency = 3
	}

	results := make([]*CheckResult, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, source := range sources {
		g.Go(func() error {
			res, err := w.Check(gctx, source)
			if err != nil {
				res = &CheckResult{Source: source, Err: err}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// SamplesHash returns a fingerprint of an ordered value list.
func SamplesHash(values []string) string {
	h := xxhash.Sum64String(strings.Join(values, "\n"))
	return strconv.FormatUint(h, 16)
}
