package carrier_test

import (
	"strings"
	"testing"
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarrier(t *testing.T) {
	t.Run("should create an idle carrier", func(t *testing.T) {
		c, err := carrier.NewCarrier(kernel.NewUUID(), "LIC-0042", "  Ana Gomez ", time.Now())

		require.NoError(t, err)
		assert.Equal(t, "Ana Gomez", c.Name())
		assert.Equal(t, "LIC-0042", c.LicenseID())
		assert.False(t, c.InTransit())
	})

	t.Run("should reject out of range fields", func(t *testing.T) {
		c, err := carrier.NewCarrier(kernel.NewUUID(), "L1", strings.Repeat("n", 101), time.Now())

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "licenseId length")
		assert.Contains(t, err.Error(), "name length")
	})
}

func TestCarrier_Depart(t *testing.T) {
	c, err := carrier.RestoreCarrier(kernel.NewUUID(), "LIC-0042", "Ana Gomez", true, true, time.Now())
	require.NoError(t, err)

	require.ErrorIs(t, c.Depart(), errs.ErrConflict)

	c.Release()
	require.NoError(t, c.Depart())
	assert.True(t, c.InTransit())
}
