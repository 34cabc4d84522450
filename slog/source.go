package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/beagle"
)

// Ensure LoggingSourceService implements beagle.SourceService.
var _ beagle.SourceService = (*LoggingSourceService)(nil)

// LoggingSourceService wraps a SourceService with debug logging.
type LoggingSourceService struct {
	next   beagle.SourceService
	logger *slog.Logger
}

// NewLoggingSourceService creates a new LoggingSourceService.
func NewLoggingSourceService(next beagle.SourceService, logger *slog.Logger) *LoggingSourceService {
	return &LoggingSourceService{next: next, logger: logger}
}

func (s *LoggingSourceService) CreateSource(ctx context.Context, source *beagle.Source) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create source",
			"name", source.Name,
			"id", source.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSource(ctx, source)
}

func (s *LoggingSourceService) FindSourceByID(ctx context.Context, id string) (source *beagle.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSourceByID(ctx, id)
}

func (s *LoggingSourceService) FindSources(ctx context.Context, filter beagle.SourceFilter) (sources []*beagle.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find sources",
			"count", len(sources),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSources(ctx, filter)
}

func (s *LoggingSourceService) UpdateSource(ctx context.Context, id string, upd beagle.SourceUpdate) (source *beagle.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("update source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateSource(ctx, id, upd)
}

func (s *LoggingSourceService) DeleteSource(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSource(ctx, id)
}
