package services

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
)

// Limits a CapacityExceededError can name.
const (
	LimitVolume = "volume"
	LimitWeight = "weight"
)

// Load is the running volume and weight carried by a route.
type Load struct {
	Volume float64
	Weight float64
}

// CapacityExceededError is the conflict returned when adding a candidate
// shipment would push the route past one of the vehicle's limits.
type CapacityExceededError struct {
	ShipmentID   kernel.UUID
	TrackingCode string
	Limit        string
	Total        float64
	Max          float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: shipment %s exceeds vehicle %s capacity (%g > %g)",
		errs.ErrConflict, e.TrackingCode, e.Limit, e.Total, e.Max)
}

func (e *CapacityExceededError) Unwrap() error {
	return errs.ErrConflict
}

// CapacityValidator decides whether a batch of candidate shipments fits on a
// route's vehicle on top of what the route already carries.
//
// Business rules:
//   - totals are seeded from the shipments already on the route
//   - candidates are added greedily in the caller's order
//   - volume is checked before weight, and the first candidate that
//     overflows either limit fails the whole batch
//   - a candidate already on this route, or on any other route, is a conflict
//   - a candidate listed twice is invalid input
//
// There is no bin-packing: a later, smaller candidate that would still fit is
// not tried once an earlier one overflows.
type CapacityValidator struct{}

func NewCapacityValidator() CapacityValidator {
	return CapacityValidator{}
}

// Check returns the load the route would carry after accepting every
// candidate, without mutating anything.
func (CapacityValidator) Check(
	v *vehicle.Vehicle,
	routeID kernel.UUID,
	assigned []*shipment.Shipment,
	candidates []*shipment.Shipment,
) (Load, error) {
	if err := v.Validate(); err != nil {
		return Load{}, err
	}
	if err := routeID.Validate(); err != nil {
		return Load{}, err
	}

	var load Load
	for _, s := range assigned {
		if err := s.Validate(); err != nil {
			return Load{}, err
		}
		load.Volume += s.Volume()
		load.Weight += s.Weight()
	}

	seen := make(map[kernel.UUID]struct{}, len(candidates))
	for _, s := range candidates {
		if err := s.Validate(); err != nil {
			return Load{}, err
		}
		if _, dup := seen[s.ID()]; dup {
			return Load{}, errs.NewValueIsInvalidErrorWithCause("shipmentIds",
				fmt.Errorf("shipment %s is listed more than once", s.TrackingCode()))
		}
		seen[s.ID()] = struct{}{}

		if s.IsAssignedTo(routeID) {
			return Load{}, errs.NewConflictError("shipment "+s.TrackingCode().String(),
				"shipment is already assigned to this route")
		}
		if s.RouteID() != nil {
			return Load{}, errs.NewConflictError("shipment "+s.TrackingCode().String(),
				"shipment is assigned to another route")
		}

		load.Volume += s.Volume()
		load.Weight += s.Weight()

		if load.Volume > v.MaxVolume() {
			return Load{}, &CapacityExceededError{
				ShipmentID:   s.ID(),
				TrackingCode: s.TrackingCode().String(),
				Limit:        LimitVolume,
				Total:        load.Volume,
				Max:          v.MaxVolume(),
			}
		}
		if load.Weight > v.MaxWeight() {
			return Load{}, &CapacityExceededError{
				ShipmentID:   s.ID(),
				TrackingCode: s.TrackingCode().String(),
				Limit:        LimitWeight,
				Total:        load.Weight,
				Max:          v.MaxWeight(),
			}
		}
	}

	return load, nil
}

// Assign runs Check and, only if every candidate fits, binds all of them to
// routeID. Either every candidate is assigned or none is.
func (c CapacityValidator) Assign(
	v *vehicle.Vehicle,
	routeID kernel.UUID,
	assigned []*shipment.Shipment,
	candidates []*shipment.Shipment,
) (Load, error) {
	load, err := c.Check(v, routeID, assigned, candidates)
	if err != nil {
		return Load{}, err
	}
	for _, s := range candidates {
		if err := s.AssignTo(routeID); err != nil {
			return Load{}, err
		}
	}
	return load, nil
}
