package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateRouteCommandIsNotConstructed = errors.New(
	"CreateRouteCommand must be created via NewCreateRouteCommand constructor",
)

// CreateRouteCommand plans a Pending route for a carrier and a vehicle.
type CreateRouteCommand struct { //nolint:recvcheck //using for validation
	carrierID   kernel.UUID
	vehicleID   kernel.UUID
	origin      string
	destination string

	guard guard.ConstructorGuard
}

func NewCreateRouteCommand(carrierID, vehicleID kernel.UUID, origin, destination string) (CreateRouteCommand, error) {
	if err := errors.Join(carrierID.Validate(), vehicleID.Validate()); err != nil {
		return CreateRouteCommand{}, err
	}
	return CreateRouteCommand{
		carrierID:   carrierID,
		vehicleID:   vehicleID,
		origin:      origin,
		destination: destination,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateRouteCommandIsNotConstructed)
}

func (c CreateRouteCommand) CarrierID() kernel.UUID { return c.carrierID }
func (c CreateRouteCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c CreateRouteCommand) Origin() string         { return c.origin }
func (c CreateRouteCommand) Destination() string    { return c.destination }
