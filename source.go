package beagle

import (
	"context"
	"time"
)

// Source is a listing page watched for new items. The selector is replayed
// on every check and LastSampleURL acts as the cursor separating new items
// from the ones already reported.
type Source struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Selector      string    `json:"selector"`
	LastSampleURL string    `json:"lastSampleUrl"`
	SamplesHash   string    `json:"samplesHash"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	if s.Selector == "" {
		return Errorf(EINVALID, "source selector required")
	}
	return nil
}

// SourceService represents a service for managing watched sources.
type SourceService interface {
	// CreateSource creates a new source.
	// Returns ECONFLICT if a source with the same name exists.
	CreateSource(ctx context.Context, source *Source) error

	// FindSourceByID retrieves a source by ID.
	// Returns ENOTFOUND if source does not exist.
	FindSourceByID(ctx context.Context, id string) (*Source, error)

	// FindSources retrieves sources matching the filter.
	FindSources(ctx context.Context, filter SourceFilter) ([]*Source, error)

	// UpdateSource updates an existing source.
	// Returns ENOTFOUND if source does not exist.
	UpdateSource(ctx context.Context, id string, upd SourceUpdate) (*Source, error)

	// DeleteSource permanently removes a source.
	// Returns ENOTFOUND if source does not exist.
	DeleteSource(ctx context.Context, id string) error
}

// SourceFilter represents a filter for FindSources.
type SourceFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SourceUpdate represents fields that can be updated on a source.
type SourceUpdate struct {
	Selector      *string `json:"selector"`
	LastSampleURL *string `json:"lastSampleUrl"`
	SamplesHash   *string `json:"samplesHash"`
}
