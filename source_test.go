package beagle_test

import (
	"testing"

	"github.com/fwojciec/beagle"
	"github.com/stretchr/testify/assert"
)

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid source", func(t *testing.T) {
		t.Parallel()

		s := &beagle.Source{Name: "news", URL: "https://example.com/", Selector: "html > body > a[href]"}
		assert.NoError(t, s.Validate())
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		s := &beagle.Source{URL: "https://example.com/", Selector: "a"}
		assert.Equal(t, beagle.EINVALID, beagle.ErrorCode(s.Validate()))
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		s := &beagle.Source{Name: "news", Selector: "a"}
		assert.Equal(t, beagle.EINVALID, beagle.ErrorCode(s.Validate()))
	})

	t.Run("requires selector", func(t *testing.T) {
		t.Parallel()

		s := &beagle.Source{Name: "news", URL: "https://example.com/"}
		assert.Equal(t, beagle.EINVALID, beagle.ErrorCode(s.Validate()))
	})
}
