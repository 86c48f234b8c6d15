package commands

import (
	"errors"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateVehicleCommandIsNotConstructed = errors.New(
	"CreateVehicleCommand must be created via NewCreateVehicleCommand constructor",
)

// CreateVehicleCommand registers a new vehicle with its capacity limits.
type CreateVehicleCommand struct { //nolint:recvcheck //using for validation
	plate     string
	maxWeight float64
	maxVolume float64

	guard guard.ConstructorGuard
}

func NewCreateVehicleCommand(plate string, maxWeight, maxVolume float64) (CreateVehicleCommand, error) {
	command := CreateVehicleCommand{
		maxWeight: maxWeight,
		maxVolume: maxVolume,
		guard:     guard.NewConstructorGuard(),
	}

	if plate == "" {
		return CreateVehicleCommand{}, errs.NewValueIsRequiredError("plate")
	}
	command.plate = plate

	return command, nil
}

func (c CreateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrCreateVehicleCommandIsNotConstructed)
}

func (c CreateVehicleCommand) Plate() string      { return c.plate }
func (c CreateVehicleCommand) MaxWeight() float64 { return c.maxWeight }
func (c CreateVehicleCommand) MaxVolume() float64 { return c.maxVolume }
