package route

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinPlaceLength = 3
	MaxPlaceLength = 255
)

// ErrRouteIsNotConstructed is returned when using a zero-value Route.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route is a planned trip from origin to destination run by one carrier on
// one vehicle. It is the aggregate root of the route lifecycle.
//
// Invariants:
//   - state only moves Pending -> InTransit -> Completed
//   - startedAt is set exactly when the route leaves Pending
//   - finishedAt is set exactly when the route becomes Completed
//   - shipments are only accepted while Pending
type Route struct {
	id          kernel.UUID
	origin      string
	destination string
	state       State
	carrierID   kernel.UUID
	vehicleID   kernel.UUID
	startedAt   *time.Time
	finishedAt  *time.Time
	active      bool
	createdAt   time.Time
	guard       guard.ConstructorGuard
}

// NewRoute plans a Pending route.
//
// The caller is responsible for checking that the carrier and vehicle exist
// and are free; the aggregate only holds their identifiers.
func NewRoute(
	id kernel.UUID,
	carrierID, vehicleID kernel.UUID,
	origin, destination string,
	now time.Time,
) (*Route, error) {
	r := &Route{
		state:     Pending,
		active:    true,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setParties(carrierID, vehicleID),
		r.setPlaces(origin, destination),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRoute rebuilds a route from persisted state. It rejects rows whose
// timestamps contradict their state.
func RestoreRoute(
	id kernel.UUID,
	carrierID, vehicleID kernel.UUID,
	origin, destination string,
	state State,
	startedAt, finishedAt *time.Time,
	active bool,
	createdAt time.Time,
) (*Route, error) {
	r, err := NewRoute(id, carrierID, vehicleID, origin, destination, createdAt)
	if err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if err := validateTimestamps(state, startedAt, finishedAt); err != nil {
		return nil, err
	}

	r.state = state
	r.startedAt = startedAt
	r.finishedAt = finishedAt
	r.active = active
	return r, nil
}

func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r *Route) IsEqual(other *Route) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Route) ID() kernel.UUID        { return r.id }
func (r *Route) Origin() string         { return r.origin }
func (r *Route) Destination() string    { return r.destination }
func (r *Route) State() State           { return r.state }
func (r *Route) CarrierID() kernel.UUID { return r.carrierID }
func (r *Route) VehicleID() kernel.UUID { return r.vehicleID }
func (r *Route) StartedAt() *time.Time  { return r.startedAt }
func (r *Route) FinishedAt() *time.Time { return r.finishedAt }
func (r *Route) IsActive() bool         { return r.active }
func (r *Route) CreatedAt() time.Time   { return r.createdAt }

// CanTransitionTo checks every guard of a transition to target without
// mutating the route.
func (r *Route) CanTransitionTo(target State) error {
	if !r.active {
		return errs.NewConflictError("route "+r.id.String(), "route is inactive")
	}
	if err := r.state.ValidateTransition(target); err != nil {
		return err
	}

	switch target { //nolint:exhaustive // ValidateTransition already rejects Pending and Unknown
	case InTransit:
		if r.startedAt != nil || r.finishedAt != nil {
			return errs.NewConflictError("route "+r.id.String(), "route has already been started")
		}
	case Completed:
		if r.startedAt == nil {
			return errs.NewConflictError("route "+r.id.String(), "route has not been started")
		}
		if r.finishedAt != nil {
			return errs.NewConflictError("route "+r.id.String(), "route has already been finished")
		}
	}
	return nil
}

// TransitionTo moves the route to target and stamps startedAt or finishedAt
// with now.
func (r *Route) TransitionTo(target State, now time.Time) error {
	if err := r.CanTransitionTo(target); err != nil {
		return err
	}

	at := now
	switch target { //nolint:exhaustive // guarded by CanTransitionTo
	case InTransit:
		r.startedAt = &at
	case Completed:
		r.finishedAt = &at
	}
	r.state = target
	return nil
}

// ValidateAcceptsShipments fails unless the route is active and Pending.
func (r *Route) ValidateAcceptsShipments() error {
	if !r.active {
		return errs.NewConflictError("route "+r.id.String(), "route is inactive")
	}
	if r.state != Pending {
		return errs.NewConflictError("route "+r.id.String(),
			"shipments can only be assigned to a Pending route, route is "+r.state.String())
	}
	return nil
}

func (r *Route) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Route) setParties(carrierID, vehicleID kernel.UUID) error {
	if err := errors.Join(carrierID.Validate(), vehicleID.Validate()); err != nil {
		return err
	}
	r.carrierID = carrierID
	r.vehicleID = vehicleID
	return nil
}

func (r *Route) setPlaces(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if err := errors.Join(
		validatePlace("origin", origin),
		validatePlace("destination", destination),
	); err != nil {
		return err
	}
	r.origin = origin
	r.destination = destination
	return nil
}

func validatePlace(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if l := len(value); l < MinPlaceLength || l > MaxPlaceLength {
		return errs.NewValueIsOutOfRangeError(name+" length", l, MinPlaceLength, MaxPlaceLength)
	}
	return nil
}

func validateTimestamps(state State, startedAt, finishedAt *time.Time) error {
	ok := true
	switch state { //nolint:exhaustive // Unknown is rejected by Validate
	case Pending:
		ok = startedAt == nil && finishedAt == nil
	case InTransit:
		ok = startedAt != nil && finishedAt == nil
	case Completed:
		ok = startedAt != nil && finishedAt != nil
	}
	if !ok {
		return errs.NewValueIsInvalidError("route timestamps do not match state " + state.String())
	}
	return nil
}
