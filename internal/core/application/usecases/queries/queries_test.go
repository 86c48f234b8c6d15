package queries_test

import (
	"math"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantErr    bool
	}{
		{name: "zero values select defaults", wantPage: 1, wantSize: queries.DefaultPageSize},
		{name: "explicit values", page: 3, size: 25, wantPage: 3, wantSize: 25},
		{name: "largest page size", page: 1, size: queries.MaxPageSize, wantPage: 1, wantSize: queries.MaxPageSize},
		{name: "negative page", page: -1, size: 10, wantErr: true},
		{name: "oversized page", page: 1, size: queries.MaxPageSize + 1, wantErr: true},
		{name: "negative size", page: 1, size: -5, wantErr: true},
		{name: "last representable page", page: math.MaxInt/10 + 1, size: 10, wantPage: math.MaxInt/10 + 1, wantSize: 10},
		{name: "page offset overflows", page: math.MaxInt/10 + 2, size: 10, wantErr: true},
		{name: "huge page", page: math.MaxInt, size: queries.MaxPageSize, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := queries.NewPagination(tt.page, tt.size)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p.Page())
			assert.Equal(t, tt.wantSize, p.Size())
			assert.Equal(t, (tt.wantPage-1)*tt.wantSize, p.Offset())
			assert.GreaterOrEqual(t, p.Offset(), 0)
		})
	}
}

func TestNewListRoutesQuery(t *testing.T) {
	page, err := queries.NewPagination(0, 0)
	require.NoError(t, err)

	t.Run("should trim the search text", func(t *testing.T) {
		state := route.InTransit
		q, err := queries.NewListRoutesQuery(page, queries.RouteFilters{State: &state, Search: "  Medellin "})

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, "Medellin", q.Filters().Search)
		assert.Equal(t, route.InTransit, *q.Filters().State)
	})

	t.Run("should reject an unknown state", func(t *testing.T) {
		state := route.State(42)

		_, err := queries.NewListRoutesQuery(page, queries.RouteFilters{State: &state})

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should not validate when not constructed", func(t *testing.T) {
		assert.ErrorIs(t, queries.ListRoutesQuery{}.Validate(), queries.ErrListRoutesQueryIsNotConstructed)
	})
}

func TestNewListShipmentsQuery(t *testing.T) {
	page, err := queries.NewPagination(1, 10)
	require.NoError(t, err)
	from := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	t.Run("should reject an inverted creation range", func(t *testing.T) {
		_, err := queries.NewListShipmentsQuery(page, queries.ShipmentFilters{CreatedFrom: &from, CreatedTo: &to})

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		status := shipment.Unknown

		_, err := queries.NewListShipmentsQuery(page, queries.ShipmentFilters{Status: &status})

		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("should accept a status filter", func(t *testing.T) {
		status := shipment.Delivered

		q, err := queries.NewListShipmentsQuery(page, queries.ShipmentFilters{Status: &status})

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, shipment.Delivered, *q.Filters().Status)
	})
}

func TestNewGetShipmentHistoryQuery(t *testing.T) {
	t.Run("should keep the tracking code", func(t *testing.T) {
		code, err := kernel.TrackingCodeFromString("ab12cd")
		require.NoError(t, err)

		q, err := queries.NewGetShipmentHistoryQuery(code)

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Equal(t, "AB12CD", q.TrackingCode().String())
	})

	t.Run("should require a tracking code", func(t *testing.T) {
		_, err := queries.NewGetShipmentHistoryQuery(kernel.TrackingCode{})

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestNewGetStatusSnapshotsQuery(t *testing.T) {
	_, err := queries.NewGetStatusSnapshotsQuery(kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValidation)
}
