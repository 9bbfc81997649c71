package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion(t *testing.T) {
	t.Run("acquire fails on empty region", func(t *testing.T) {
		r := NewRegion()
		_, err := r.Acquire()
		assert.ErrorIs(t, err, ErrEmptyRegion)
	})

	t.Run("release restores the pre-export markup", func(t *testing.T) {
		r := NewRegion()
		r.SetMarkup("<div>원본</div>")

		snap, err := r.Acquire()
		require.NoError(t, err)

		err = snap.Mutate(func(markup string) (string, error) {
			return strings.ToUpper(markup), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "<DIV>원본</DIV>", snap.Markup())

		snap.Release()
		assert.Equal(t, "<div>원본</div>", r.Markup())
	})

	t.Run("failed mutation keeps the current markup", func(t *testing.T) {
		r := NewRegion()
		r.SetMarkup("<div>원본</div>")

		snap, err := r.Acquire()
		require.NoError(t, err)
		defer snap.Release()

		err = snap.Mutate(func(string) (string, error) {
			return "", assert.AnError
		})
		assert.Error(t, err)
		assert.Equal(t, "<div>원본</div>", snap.Markup())
	})

	t.Run("double release is safe", func(t *testing.T) {
		r := NewRegion()
		r.SetMarkup("<div>원본</div>")

		snap, err := r.Acquire()
		require.NoError(t, err)
		snap.Release()
		snap.Release()

		// The region can be acquired again after release
		snap2, err := r.Acquire()
		require.NoError(t, err)
		snap2.Release()
	})
}
