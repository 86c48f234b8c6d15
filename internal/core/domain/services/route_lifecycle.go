package services

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
)

// RouteLifecycle moves a route to its next state and cascades the change to
// the vehicle, the carrier and the status history of every shipment on the
// route.
//
// Business rules:
//   - the route itself decides whether target is a legal next state
//   - leaving Pending requires at least one shipment and a vehicle and
//     carrier that are not already in transit
//   - events are stamped with now, but never before the shipment's previous
//     event
//   - every guard is evaluated before anything is mutated, so a failed
//     transition leaves all arguments untouched
type RouteLifecycle struct{}

func NewRouteLifecycle() RouteLifecycle {
	return RouteLifecycle{}
}

// Transition applies target to r, v and c and returns the status events to
// append, one per shipment.
//
// Parameters:
//   - shipments: every shipment assigned to r, locked by the caller
//   - latest: the most recent status event per shipment ID; missing entries
//     are treated as shipments without history
//   - now: the transition time recorded as startedAt or finishedAt
func (RouteLifecycle) Transition(
	r *route.Route,
	v *vehicle.Vehicle,
	c *carrier.Carrier,
	shipments []*shipment.Shipment,
	latest map[kernel.UUID]*shipment.StatusEvent,
	target route.State,
	now time.Time,
) ([]*shipment.StatusEvent, error) {
	if err := errors.Join(r.Validate(), v.Validate(), c.Validate()); err != nil {
		return nil, err
	}
	if !r.VehicleID().IsEqual(v.ID()) || !r.CarrierID().IsEqual(c.ID()) {
		return nil, errs.NewValueIsInvalidError("vehicle and carrier must be the ones planned for the route")
	}

	if err := r.CanTransitionTo(target); err != nil {
		return nil, err
	}
	if target == route.InTransit {
		if len(shipments) == 0 {
			return nil, errs.NewConflictError("route "+r.ID().String(), "route has no shipments assigned")
		}
		if err := errors.Join(v.CanDepart(), c.CanDepart()); err != nil {
			return nil, err
		}
	}

	status, err := ShipmentStatusFor(target)
	if err != nil {
		return nil, err
	}

	events := make([]*shipment.StatusEvent, 0, len(shipments))
	for _, s := range shipments {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if !s.IsAssignedTo(r.ID()) {
			return nil, errs.NewValueIsInvalidError("shipment " + s.TrackingCode().String() + " is not on the route")
		}
		e, err := shipment.NewStatusEventAfter(s.ID(), status, now, latest[s.ID()])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := r.TransitionTo(target, now); err != nil {
		return nil, err
	}
	switch target { //nolint:exhaustive // CanTransitionTo rejects Pending and Unknown
	case route.InTransit:
		// CanDepart already passed for both.
		_ = v.Depart()
		_ = c.Depart()
	case route.Completed:
		v.Release()
		c.Release()
	}

	return events, nil
}
