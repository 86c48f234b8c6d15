package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand registers a shipment. The tracking code is generated
// by the handler.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	address     string
	dimensions  kernel.Dimensions
	weight      float64
	productType string

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	address string,
	height, width, length float64,
	weight float64,
	productType string,
) (CreateShipmentCommand, error) {
	dims, err := kernel.NewDimensions(height, width, length)
	if err != nil {
		return CreateShipmentCommand{}, err
	}
	return CreateShipmentCommand{
		address:     address,
		dimensions:  dims,
		weight:      weight,
		productType: productType,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Address() string               { return c.address }
func (c CreateShipmentCommand) Dimensions() kernel.Dimensions { return c.dimensions }
func (c CreateShipmentCommand) Weight() float64               { return c.weight }
func (c CreateShipmentCommand) ProductType() string           { return c.productType }
