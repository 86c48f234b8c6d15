package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeRouteStateCommand(t *testing.T) {
	routeID := kernel.NewUUID()

	cmd, err := commands.NewChangeRouteStateCommand(routeID, route.InTransit)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, routeID, cmd.RouteID())
	assert.Equal(t, route.InTransit, cmd.Target())

	_, err = commands.NewChangeRouteStateCommand(routeID, route.Unknown)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = commands.NewChangeRouteStateCommand(kernel.UUID{}, route.Completed)
	require.ErrorIs(t, err, errs.ErrValidation)
}
