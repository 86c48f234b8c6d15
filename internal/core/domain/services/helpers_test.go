package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/require"
)

var codeSeq atomic.Int64

func newVehicle(t *testing.T, maxVolume, maxWeight float64) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "TRK-001", maxWeight, maxVolume, time.Now())
	require.NoError(t, err)
	return v
}

func newCarrier(t *testing.T) *carrier.Carrier {
	t.Helper()
	c, err := carrier.NewCarrier(kernel.NewUUID(), "LIC-0042", "Ana Gomez", time.Now())
	require.NoError(t, err)
	return c
}

func newRoute(t *testing.T, v *vehicle.Vehicle, c *carrier.Carrier) *route.Route {
	t.Helper()
	r, err := route.NewRoute(kernel.NewUUID(), c.ID(), v.ID(), "Warehouse A", "Store 12", time.Now())
	require.NoError(t, err)
	return r
}

// newShipment builds a shipment whose volume is h*w*l.
func newShipment(t *testing.T, h, w, l, weight float64) *shipment.Shipment {
	t.Helper()
	code, err := kernel.TrackingCodeFromString(fmt.Sprintf("T%05d", codeSeq.Add(1)))
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(h, w, l)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), code, "Calle 10 #4-21", dims, weight, "Books", time.Now())
	require.NoError(t, err)
	return s
}
