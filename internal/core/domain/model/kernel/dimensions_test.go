package kernel_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	t.Run("computes volume", func(t *testing.T) {
		d, err := kernel.NewDimensions(2, 4, 5)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.InDelta(t, 40.0, d.Volume(), 1e-9)
		assert.InDelta(t, 2.0, d.Height(), 1e-9)
		assert.InDelta(t, 4.0, d.Width(), 1e-9)
		assert.InDelta(t, 5.0, d.Length(), 1e-9)
	})

	t.Run("reports every non-positive side", func(t *testing.T) {
		_, err := kernel.NewDimensions(0, -1, 3)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "height")
		assert.Contains(t, err.Error(), "width")
		assert.NotContains(t, err.Error(), "length")
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var d kernel.Dimensions

		require.Error(t, d.Validate())
	})
}
