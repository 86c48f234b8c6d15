package vehicle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinPlateLength = 3
	MaxPlateLength = 20
	// MinCapacity is the smallest accepted maxWeight and maxVolume.
	MinCapacity = 10
)

// ErrVehicleIsNotConstructed is returned when using a zero-value Vehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Vehicle is the capacity-bounded conveyance a route runs on.
//
// Invariants:
//   - plate is 3 to 20 characters
//   - maxWeight and maxVolume are at least MinCapacity
//   - inTransit is true for at most one active route; the route lifecycle
//     flips it through Depart and Release
type Vehicle struct {
	id        kernel.UUID
	plate     string
	maxWeight float64
	maxVolume float64
	inTransit bool
	active    bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewVehicle registers a vehicle that is active and parked.
func NewVehicle(id kernel.UUID, plate string, maxWeight, maxVolume float64, now time.Time) (*Vehicle, error) {
	v := &Vehicle{
		active:    true,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setPlate(plate),
		v.setCapacity(maxWeight, maxVolume),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle rebuilds a vehicle from persisted state.
func RestoreVehicle(
	id kernel.UUID,
	plate string,
	maxWeight, maxVolume float64,
	inTransit, active bool,
	createdAt time.Time,
) (*Vehicle, error) {
	v, err := NewVehicle(id, plate, maxWeight, maxVolume, createdAt)
	if err != nil {
		return nil, err
	}
	v.inTransit = inTransit
	v.active = active
	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID      { return v.id }
func (v *Vehicle) Plate() string        { return v.plate }
func (v *Vehicle) MaxWeight() float64   { return v.maxWeight }
func (v *Vehicle) MaxVolume() float64   { return v.maxVolume }
func (v *Vehicle) InTransit() bool      { return v.inTransit }
func (v *Vehicle) IsActive() bool       { return v.active }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

// CanDepart reports whether the vehicle is free to start a route.
func (v *Vehicle) CanDepart() error {
	if !v.active {
		return errs.NewConflictError("vehicle "+v.id.String(), "vehicle is retired")
	}
	if v.inTransit {
		return errs.NewConflictError("vehicle "+v.id.String(), "vehicle is already in transit")
	}
	return nil
}

// Depart marks the vehicle as in transit.
func (v *Vehicle) Depart() error {
	if err := v.CanDepart(); err != nil {
		return err
	}
	v.inTransit = true
	return nil
}

// Release parks the vehicle once its route is completed.
func (v *Vehicle) Release() {
	v.inTransit = false
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	if l := len(plate); l < MinPlateLength || l > MaxPlateLength {
		return errs.NewValueIsOutOfRangeError("plate length", l, MinPlateLength, MaxPlateLength)
	}
	v.plate = strings.ToUpper(plate)
	return nil
}

func (v *Vehicle) setCapacity(maxWeight, maxVolume float64) error {
	var problems []error
	if maxWeight < MinCapacity {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"maxWeight", fmt.Errorf("%v is less than %d", maxWeight, MinCapacity)))
	}
	if maxVolume < MinCapacity {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"maxVolume", fmt.Errorf("%v is less than %d", maxVolume, MinCapacity)))
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	v.maxWeight = maxWeight
	v.maxVolume = maxVolume
	return nil
}
