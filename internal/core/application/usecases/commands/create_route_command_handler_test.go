package commands_test

import (
	"testing"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 40, 500)
	c := newCarrier(t)
	cmd, err := commands.NewCreateRouteCommand(c.ID(), v.ID(), "Warehouse A", "Store 12")
	require.NoError(t, err)

	vehicles := new(MockVehicleRepository)
	carriers := new(MockCarrierRepository)
	routes := new(MockRouteRepository)
	uow := new(MockUoW)
	cache := new(MockCacheInvalidator)
	factory := new(MockRouteUoWFactory)

	var added *route.Route
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		uow.On("CarrierRepository").Return(carriers).Once(),
		carriers.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		uow.On("RouteRepository").Return(routes).Once(),
		routes.On("Add", ctx, mock.AnythingOfType("*route.Route")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*route.Route) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		cache.On("Invalidate", ctx, []coherency.Prefix{coherency.Routes}).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateRouteCommandHandler(factory, cache)
	id, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, id, added.ID())
	assert.Equal(t, route.Pending, added.State())
	assert.Equal(t, v.ID(), added.VehicleID())
	assert.Equal(t, c.ID(), added.CarrierID())
	uow.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCreateRouteCommandHandler_Handle_VehicleInTransit(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 40, 500)
	require.NoError(t, v.Depart())
	c := newCarrier(t)
	cmd, err := commands.NewCreateRouteCommand(c.ID(), v.ID(), "Warehouse A", "Store 12")
	require.NoError(t, err)

	vehicles := new(MockVehicleRepository)
	carriers := new(MockCarrierRepository)
	uow := new(MockUoW)
	cache := new(MockCacheInvalidator)
	factory := new(MockRouteUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		uow.On("CarrierRepository").Return(carriers).Once(),
		carriers.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateRouteCommandHandler(factory, cache)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "already in transit")
	uow.AssertNotCalled(t, "RouteRepository")
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestCreateRouteCommandHandler_Handle_UnknownCarrier(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 40, 500)
	c := newCarrier(t)
	cmd, err := commands.NewCreateRouteCommand(c.ID(), v.ID(), "Warehouse A", "Store 12")
	require.NoError(t, err)

	vehicles := new(MockVehicleRepository)
	carriers := new(MockCarrierRepository)
	uow := new(MockUoW)
	factory := new(MockRouteUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicles).Once(),
		vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		uow.On("CarrierRepository").Return(carriers).Once(),
		carriers.On("Get", ctx, c.ID()).Return(nil, errs.NewObjectNotFoundError("carrier", c.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateRouteCommandHandler(factory, new(MockCacheInvalidator))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
