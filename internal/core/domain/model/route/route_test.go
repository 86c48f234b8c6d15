package route_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoute(t *testing.T) *route.Route {
	t.Helper()
	r, err := route.NewRoute(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Warehouse A", "Store 12", time.Now())
	require.NoError(t, err)
	return r
}

func TestNewRoute(t *testing.T) {
	t.Run("should create a pending route without timestamps", func(t *testing.T) {
		r := newRoute(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, route.Pending, r.State())
		assert.Nil(t, r.StartedAt())
		assert.Nil(t, r.FinishedAt())
		assert.True(t, r.IsActive())
	})

	t.Run("should reject short places and missing parties together", func(t *testing.T) {
		var missing kernel.UUID

		r, err := route.NewRoute(kernel.NewUUID(), missing, kernel.NewUUID(), "AB", "", time.Now())

		require.Error(t, err)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "origin length")
		assert.Contains(t, err.Error(), "destination")
	})

	t.Run("zero value should not validate", func(t *testing.T) {
		var r route.Route
		require.ErrorIs(t, r.Validate(), route.ErrRouteIsNotConstructed)
	})
}

func TestRoute_TransitionTo(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	finish := start.Add(5 * time.Hour)

	t.Run("should walk the whole lifecycle stamping timestamps", func(t *testing.T) {
		r := newRoute(t)

		require.NoError(t, r.TransitionTo(route.InTransit, start))
		assert.Equal(t, route.InTransit, r.State())
		require.NotNil(t, r.StartedAt())
		assert.Equal(t, start, *r.StartedAt())
		assert.Nil(t, r.FinishedAt())

		require.NoError(t, r.TransitionTo(route.Completed, finish))
		assert.Equal(t, route.Completed, r.State())
		require.NotNil(t, r.FinishedAt())
		assert.Equal(t, finish, *r.FinishedAt())
	})

	t.Run("should not complete a pending route", func(t *testing.T) {
		r := newRoute(t)

		err := r.TransitionTo(route.Completed, finish)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, route.Pending, r.State())
		assert.Nil(t, r.FinishedAt())
	})

	t.Run("should not start twice", func(t *testing.T) {
		r := newRoute(t)
		require.NoError(t, r.TransitionTo(route.InTransit, start))

		err := r.TransitionTo(route.InTransit, finish)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, start, *r.StartedAt())
	})
}

func TestRoute_ValidateAcceptsShipments(t *testing.T) {
	r := newRoute(t)
	require.NoError(t, r.ValidateAcceptsShipments())

	require.NoError(t, r.TransitionTo(route.InTransit, time.Now()))
	require.ErrorIs(t, r.ValidateAcceptsShipments(), errs.ErrConflict)
}

func TestRestoreRoute(t *testing.T) {
	started := time.Now()

	t.Run("should restore an in-transit route", func(t *testing.T) {
		r, err := route.RestoreRoute(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Warehouse A", "Store 12", route.InTransit, &started, nil, true, started)

		require.NoError(t, err)
		assert.Equal(t, route.InTransit, r.State())
	})

	t.Run("should reject timestamps that contradict the state", func(t *testing.T) {
		_, err := route.RestoreRoute(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Warehouse A", "Store 12", route.Pending, &started, nil, true, started)

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
