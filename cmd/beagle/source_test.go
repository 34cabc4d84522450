package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/beagle"
	main "github.com/fwojciec/beagle/cmd/beagle"
	"github.com/fwojciec/beagle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("discovers the selector when none is given", func(t *testing.T) {
		t.Parallel()

		var created *beagle.Source
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scanner = &mock.ScanService{
			FetchAllFn: func(_ context.Context, url string) (*beagle.FetchAllResult, error) {
				return &beagle.FetchAllResult{Selector: "html > body > ul > li > a[href]"}, nil
			},
		}
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(_ context.Context, s *beagle.Source) error {
				s.ID = "src-1"
				created = s
				return nil
			},
		}

		cmd := &main.AddCmd{Name: "blog", URL: "https://example.com/blog"}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, created)
		assert.Equal(t, "html > body > ul > li > a[href]", created.Selector)
		assert.Contains(t, stdout.String(), `Added source "blog" (src-1)`)
	})

	t.Run("uses the given selector without scanning", func(t *testing.T) {
		t.Parallel()

		var created *beagle.Source
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(_ context.Context, s *beagle.Source) error {
				created = s
				return nil
			},
		}

		cmd := &main.AddCmd{Name: "blog", URL: "https://example.com/blog", Selector: "main a"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "main a", created.Selector)
	})

	t.Run("fails when the page has no repeating links", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scanner = &mock.ScanService{
			FetchAllFn: func(_ context.Context, url string) (*beagle.FetchAllResult, error) {
				return &beagle.FetchAllResult{SampleURL: []string{}}, nil
			},
		}

		cmd := &main.AddCmd{Name: "blog", URL: "https://example.com/blog"}
		err := cmd.Run(deps)

		assert.Equal(t, beagle.EINVALID, beagle.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--selector")
	})

	t.Run("reports duplicate names", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			CreateSourceFn: func(_ context.Context, s *beagle.Source) error {
				return beagle.Errorf(beagle.ECONFLICT, "source %q already exists", s.Name)
			},
		}

		cmd := &main.AddCmd{Name: "blog", URL: "https://example.com/blog", Selector: "a"}
		err := cmd.Run(deps)

		assert.Equal(t, beagle.ECONFLICT, beagle.ErrorCode(err))
		assert.Contains(t, stderr.String(), `source "blog" already exists`)
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists sources with ID, name, and URL", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ beagle.SourceFilter) ([]*beagle.Source, error) {
				return []*beagle.Source{
					{ID: "src-1", Name: "blog", URL: "https://example.com/blog"},
					{ID: "src-2", Name: "jobs", URL: "https://example.com/jobs"},
				}, nil
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "src-1  blog  https://example.com/blog")
		assert.Contains(t, output, "src-2  jobs  https://example.com/jobs")
	})

	t.Run("shows helpful message when no sources exist", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ beagle.SourceFilter) ([]*beagle.Source, error) {
				return nil, nil
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "beagle add")
	})

	t.Run("prints an empty JSON array", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.JSON = true
		deps.Sources = &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ beagle.SourceFilter) ([]*beagle.Source, error) {
				return nil, nil
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))

		assert.JSONEq(t, `[]`, stdout.String())
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)

		err := (&main.DeleteCmd{Name: "blog"}).Run(deps)

		assert.Equal(t, beagle.EINVALID, beagle.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes the named source", func(t *testing.T) {
		t.Parallel()

		var deleted string
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			FindSourcesFn: func(_ context.Context, f beagle.SourceFilter) ([]*beagle.Source, error) {
				return []*beagle.Source{{ID: "src-1", Name: *f.Name}}, nil
			},
			DeleteSourceFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		require.NoError(t, (&main.DeleteCmd{Name: "blog", Force: true}).Run(deps))

		assert.Equal(t, "src-1", deleted)
		assert.Contains(t, stdout.String(), `Deleted source "blog"`)
	})

	t.Run("returns ENOTFOUND for unknown name", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Sources = &mock.SourceService{
			FindSourcesFn: func(_ context.Context, _ beagle.SourceFilter) ([]*beagle.Source, error) {
				return nil, nil
			},
		}

		err := (&main.DeleteCmd{Name: "nope", Force: true}).Run(deps)

		assert.Equal(t, beagle.ENOTFOUND, beagle.ErrorCode(err))
		assert.Contains(t, stderr.String(), "beagle list")
	})
}
