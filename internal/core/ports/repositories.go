package ports

import (
	"context"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
)

// Every repository treats retired rows (active=false) as absent: lookups
// return an errs.ObjectNotFoundError for them. Methods named ForUpdate take
// an exclusive row lock held until the surrounding transaction ends.

// CarrierRepository persists Carrier aggregates.
type CarrierRepository interface {
	// Add fails with an errs.ConflictError if the license is already taken.
	Add(ctx context.Context, c *carrier.Carrier) error
	Update(ctx context.Context, c *carrier.Carrier) error
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)
}

// VehicleRepository persists Vehicle aggregates.
type VehicleRepository interface {
	// Add fails with an errs.ConflictError if the plate is already taken.
	Add(ctx context.Context, v *vehicle.Vehicle) error
	Update(ctx context.Context, v *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}

// RouteRepository persists Route aggregates.
type RouteRepository interface {
	Add(ctx context.Context, r *route.Route) error

	// Update writes the columns owned by the route's current state.
	Update(ctx context.Context, r *route.Route) error

	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// Find returns every active route matching lookup, without locking.
	Find(ctx context.Context, lookup RouteLookup) ([]*route.Route, error)
}

// ShipmentRepository persists Shipment aggregates.
type ShipmentRepository interface {
	// Add fails with an errs.ConflictError if the tracking code is taken;
	// callers retry with a new code.
	Add(ctx context.Context, s *shipment.Shipment) error

	// UpdateRoute persists the route assignment of every given shipment in
	// one statement.
	UpdateRoute(ctx context.Context, routeID kernel.UUID, shipments []*shipment.Shipment) error

	Get(ctx context.Context, lookup ShipmentLookup) (*shipment.Shipment, error)

	// GetByRouteForUpdate locks and returns the route's shipments ordered by
	// ID.
	GetByRouteForUpdate(ctx context.Context, routeID kernel.UUID) ([]*shipment.Shipment, error)

	// GetManyForUpdate locks the given shipments in ID order and returns the
	// ones that exist. Missing IDs are simply absent from the result.
	GetManyForUpdate(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)
}

// StatusEventRepository is the append-only shipment status history.
type StatusEventRepository interface {
	Append(ctx context.Context, events ...*shipment.StatusEvent) error

	// Latest returns the most recent event per shipment. Shipments without
	// history are absent from the map.
	Latest(ctx context.Context, shipmentIDs []kernel.UUID) (map[kernel.UUID]*shipment.StatusEvent, error)
}
