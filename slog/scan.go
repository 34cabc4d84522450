package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/beagle"
)

// Ensure LoggingScanService implements beagle.ScanService.
var _ beagle.ScanService = (*LoggingScanService)(nil)

// LoggingScanService wraps a ScanService with logging.
type LoggingScanService struct {
	next   beagle.ScanService
	logger *slog.Logger
}

// NewLoggingScanService creates a new LoggingScanService.
func NewLoggingScanService(next beagle.ScanService, logger *slog.Logger) *LoggingScanService {
	return &LoggingScanService{next: next, logger: logger}
}

// FetchAll delegates to the wrapped service and logs the chosen selector.
func (s *LoggingScanService) FetchAll(ctx context.Context, url string) (res *beagle.FetchAllResult, err error) {
	defer func(begin time.Time) {
		var selector string
		var count int
		if res != nil {
			selector, count = res.Selector, len(res.SampleURL)
		}
		s.logger.Info("fetch all",
			"url", url,
			"selector", selector,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchAll(ctx, url)
}

// FetchOne delegates to the wrapped service and logs the result flags.
func (s *LoggingScanService) FetchOne(ctx context.Context, url, selector, before string) (res *beagle.FetchOneResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"selector", selector,
		}
		if res != nil {
			attrs = append(attrs,
				"count", len(res.SampleURL),
				"selectorEmpty", res.IsSelectorEmpty,
				"sampleNotFound", res.IsSampleURLNotFound,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("fetch one", attrs...)
	}(time.Now())
	return s.next.FetchOne(ctx, url, selector, before)
}
