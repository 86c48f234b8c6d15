package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/guard"
)

var ErrChangeRouteStateCommandIsNotConstructed = errors.New(
	"ChangeRouteStateCommand must be created via NewChangeRouteStateCommand constructor",
)

type ChangeRouteStateCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	target  route.State

	guard guard.ConstructorGuard
}

func NewChangeRouteStateCommand(routeID kernel.UUID, target route.State) (ChangeRouteStateCommand, error) {
	command := ChangeRouteStateCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setTarget(target),
	); err != nil {
		return ChangeRouteStateCommand{}, err
	}

	return command, nil
}

func (c ChangeRouteStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeRouteStateCommandIsNotConstructed)
}

func (c ChangeRouteStateCommand) RouteID() kernel.UUID { return c.routeID }
func (c ChangeRouteStateCommand) Target() route.State  { return c.target }

func (c *ChangeRouteStateCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	c.routeID = routeID
	return nil
}

func (c *ChangeRouteStateCommand) setTarget(target route.State) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
