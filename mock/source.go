package mock

import (
	"context"

	"github.com/fwojciec/beagle"
)

var _ beagle.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of beagle.SourceService.
type SourceService struct {
	CreateSourceFn   func(ctx context.Context, source *beagle.Source) error
	FindSourceByIDFn func(ctx context.Context, id string) (*beagle.Source, error)
	FindSourcesFn    func(ctx context.Context, filter beagle.SourceFilter) ([]*beagle.Source, error)
	UpdateSourceFn   func(ctx context.Context, id string, upd beagle.SourceUpdate) (*beagle.Source, error)
	DeleteSourceFn   func(ctx context.Context, id string) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *beagle.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*beagle.Source, error) {
	return s.FindSourceByIDFn(ctx, id)
}

func (s *SourceService) FindSources(ctx context.Context, filter beagle.SourceFilter) ([]*beagle.Source, error) {
	return s.FindSourcesFn(ctx, filter)
}

func (s *SourceService) UpdateSource(ctx context.Context, id string, upd beagle.SourceUpdate) (*beagle.Source, error) {
	return s.UpdateSourceFn(ctx, id, upd)
}

func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	return s.DeleteSourceFn(ctx, id)
}
