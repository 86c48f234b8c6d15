package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrAssignShipmentsCommandIsNotConstructed = errors.New(
	"AssignShipmentsCommand must be created via NewAssignShipmentsCommand constructor",
)

// AssignShipmentsCommand adds shipments to a Pending route. The order of
// shipmentIDs is the order capacity is accounted in.
type AssignShipmentsCommand struct { //nolint:recvcheck //using for validation
	routeID     kernel.UUID
	shipmentIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignShipmentsCommand(routeID kernel.UUID, shipmentIDs []kernel.UUID) (AssignShipmentsCommand, error) {
	command := AssignShipmentsCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setShipmentIDs(shipmentIDs),
	); err != nil {
		return AssignShipmentsCommand{}, err
	}

	return command, nil
}

func (c AssignShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrAssignShipmentsCommandIsNotConstructed)
}

func (c AssignShipmentsCommand) RouteID() kernel.UUID { return c.routeID }

// ShipmentIDs returns a copy of the candidate IDs in request order.
func (c AssignShipmentsCommand) ShipmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.shipmentIDs...)
}

func (c *AssignShipmentsCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *AssignShipmentsCommand) setShipmentIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("shipmentIds")
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("shipmentIds",
				fmt.Errorf("%s is listed more than once", id))
		}
		seen[id] = struct{}{}
	}
	c.shipmentIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
