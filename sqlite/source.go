package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/beagle"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ beagle.SourceService = (*SourceService)(nil)

const sourceColumns = "id, name, url, selector, last_sample_url, samples_hash, created_at, updated_at"

// SourceService implements beagle.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSource creates a new source.
func (s *SourceService) CreateSource(ctx context.Context, source *beagle.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	source.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	source.CreatedAt = now
	source.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sources (`+sourceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, source.ID, source.Name, source.URL, source.Selector, source.LastSampleURL, source.SamplesHash,
		source.CreatedAt.Format(time.RFC3339), source.UpdatedAt.Format(time.RFC3339))

	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return beagle.Errorf(beagle.ECONFLICT, "source %q already exists", source.Name)
	}
	return err
}

// FindSourceByID retrieves a source by ID.
func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*beagle.Source, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sourceColumns+" FROM sources WHERE id = ?", id)

	source, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, beagle.Errorf(beagle.ENOTFOUND, "source not found")
	}
	if err != nil {
		return nil, err
	}
	return source, nil
}

// FindSources retrieves sources matching the filter, ordered by name.
func (s *SourceService) FindSources(ctx context.Context, filter beagle.SourceFilter) ([]*beagle.Source, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + sourceColumns + " FROM sources WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*beagle.Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// UpdateSource updates an existing source.
func (s *SourceService) UpdateSource(ctx context.Context, id string, upd beagle.SourceUpdate) (*beagle.Source, error) {
	source, err := s.FindSourceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Selector != nil {
		source.Selector = *upd.Selector
	}
	if upd.LastSampleURL != nil {
		source.LastSampleURL = *upd.LastSampleURL
	}
	if upd.SamplesHash != nil {
		source.SamplesHash = *upd.SamplesHash
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}

	source.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE sources
		SET selector = ?, last_sample_url = ?, samples_hash = ?, updated_at = ?
		WHERE id = ?
	`, source.Selector, source.LastSampleURL, source.SamplesHash,
		source.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return source, nil
}

// DeleteSource permanently removes a source.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sources WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return beagle.Errorf(beagle.ENOTFOUND, "source not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*beagle.Source, error) {
	var source beagle.Source
	var createdAt, updatedAt string

	if err := row.Scan(&source.ID, &source.Name, &source.URL, &source.Selector,
		&source.LastSampleURL, &source.SamplesHash, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if source.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if source.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &source, nil
}
