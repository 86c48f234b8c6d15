package commands_test

import (
	"testing"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignFixture struct {
	uow       *MockUoW
	routes    *MockRouteRepository
	vehicles  *MockVehicleRepository
	shipments *MockShipmentRepository
	cache     *MockCacheInvalidator
	factory   *MockRouteUoWFactory
}

func newAssignFixture() assignFixture {
	return assignFixture{
		uow:       new(MockUoW),
		routes:    new(MockRouteRepository),
		vehicles:  new(MockVehicleRepository),
		shipments: new(MockShipmentRepository),
		cache:     new(MockCacheInvalidator),
		factory:   new(MockRouteUoWFactory),
	}
}

func ids(shipments ...*shipment.Shipment) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, s.ID())
	}
	return out
}

func TestAssignShipmentsCommandHandler_Handle_FillsVehicleThenRejectsOverflow(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 100, 1000)
	c := newCarrier(t)
	r := newRoute(t, v, c)
	a := newShipment(t, 2, 4, 5, 10)  // 40
	b := newShipment(t, 2, 5, 5, 10)  // 50
	cc := newShipment(t, 2, 2, 5, 10) // 20

	// First request: A and B fit, 90 of 100.
	f := newAssignFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("RouteRepository").Return(f.routes).Once(),
		f.routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		f.uow.On("VehicleRepository").Return(f.vehicles).Once(),
		f.vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		f.uow.On("ShipmentRepository").Return(f.shipments).Once(),
		f.shipments.On("GetByRouteForUpdate", ctx, r.ID()).Return([]*shipment.Shipment{}, nil).Once(),
		// The store returns rows in id order; the handler restores request order.
		f.shipments.On("GetManyForUpdate", ctx, ids(a, b)).Return([]*shipment.Shipment{b, a}, nil).Once(),
		f.shipments.On("UpdateRoute", ctx, r.ID(), []*shipment.Shipment{a, b}).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.cache.On("Invalidate", ctx, []coherency.Prefix{coherency.Routes, coherency.Shipments}).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignShipmentsCommandHandler(f.factory, f.cache)
	cmd, err := commands.NewAssignShipmentsCommand(r.ID(), ids(a, b))
	require.NoError(t, err)

	load, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 90.0, load.Volume, 1e-9)
	assert.InDelta(t, 20.0, load.Weight, 1e-9)
	assert.True(t, a.IsAssignedTo(r.ID()))
	assert.True(t, b.IsAssignedTo(r.ID()))
	f.uow.AssertExpectations(t)
	f.shipments.AssertExpectations(t)
	f.cache.AssertExpectations(t)

	// Second request: C would bring the route to 110.
	g := newAssignFixture()
	mock.InOrder(
		g.factory.On("Create").Return(g.uow).Once(),
		g.uow.On("Begin", ctx).Return(nil).Once(),
		g.uow.On("RouteRepository").Return(g.routes).Once(),
		g.routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		g.uow.On("VehicleRepository").Return(g.vehicles).Once(),
		g.vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		g.uow.On("ShipmentRepository").Return(g.shipments).Once(),
		g.shipments.On("GetByRouteForUpdate", ctx, r.ID()).Return([]*shipment.Shipment{a, b}, nil).Once(),
		g.shipments.On("GetManyForUpdate", ctx, ids(cc)).Return([]*shipment.Shipment{cc}, nil).Once(),
		g.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler = commands.NewAssignShipmentsCommandHandler(g.factory, g.cache)
	cmd, err = commands.NewAssignShipmentsCommand(r.ID(), ids(cc))
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	var exceeded *services.CapacityExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, services.LimitVolume, exceeded.Limit)
	assert.Equal(t, cc.ID(), exceeded.ShipmentID)
	assert.Nil(t, cc.RouteID())
	g.shipments.AssertNotCalled(t, "UpdateRoute", mock.Anything, mock.Anything, mock.Anything)
	g.uow.AssertNotCalled(t, "Commit", ctx)
	g.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestAssignShipmentsCommandHandler_Handle_MissingShipment(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 100, 1000)
	r := newRoute(t, v, newCarrier(t))
	a := newShipment(t, 1, 1, 1, 1)
	missing := kernel.NewUUID()

	f := newAssignFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("RouteRepository").Return(f.routes).Once(),
		f.routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		f.uow.On("VehicleRepository").Return(f.vehicles).Once(),
		f.vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		f.uow.On("ShipmentRepository").Return(f.shipments).Once(),
		f.shipments.On("GetByRouteForUpdate", ctx, r.ID()).Return([]*shipment.Shipment{}, nil).Once(),
		f.shipments.On("GetManyForUpdate", ctx, []kernel.UUID{a.ID(), missing}).
			Return([]*shipment.Shipment{a}, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignShipmentsCommandHandler(f.factory, f.cache)
	cmd, err := commands.NewAssignShipmentsCommand(r.ID(), []kernel.UUID{a.ID(), missing})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), missing.String())
	assert.Nil(t, a.RouteID())
}

func TestAssignShipmentsCommandHandler_Handle_LockConflictIsNotInternal(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 100, 1000)
	r := newRoute(t, v, newCarrier(t))
	a := newShipment(t, 1, 1, 1, 1)
	aborted := errs.NewConflictErrorWithCause("shipments", "concurrent update, retry the request", assert.AnError)

	f := newAssignFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("RouteRepository").Return(f.routes).Once(),
		f.routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		f.uow.On("VehicleRepository").Return(f.vehicles).Once(),
		f.vehicles.On("Get", ctx, v.ID()).Return(v, nil).Once(),
		f.uow.On("ShipmentRepository").Return(f.shipments).Once(),
		f.shipments.On("GetByRouteForUpdate", ctx, r.ID()).Return([]*shipment.Shipment{}, nil).Once(),
		f.shipments.On("GetManyForUpdate", ctx, []kernel.UUID{a.ID()}).Return(nil, aborted).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignShipmentsCommandHandler(f.factory, f.cache)
	cmd, err := commands.NewAssignShipmentsCommand(r.ID(), []kernel.UUID{a.ID()})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.NotErrorIs(t, err, errs.ErrInternal)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestAssignShipmentsCommandHandler_Handle_RouteAlreadyLeft(t *testing.T) {
	ctx := t.Context()
	v := newVehicle(t, 100, 1000)
	r := newRoute(t, v, newCarrier(t))
	require.NoError(t, r.TransitionTo(route.InTransit, r.CreatedAt()))

	f := newAssignFixture()
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("RouteRepository").Return(f.routes).Once(),
		f.routes.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAssignShipmentsCommandHandler(f.factory, f.cache)
	cmd, err := commands.NewAssignShipmentsCommand(r.ID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	f.uow.AssertNotCalled(t, "ShipmentRepository")
}

func TestAssignShipmentsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockRouteUoWFactory)
	handler := commands.NewAssignShipmentsCommandHandler(factory, new(MockCacheInvalidator))
	_, err := handler.Handle(ctx, commands.AssignShipmentsCommand{})

	require.ErrorIs(t, err, commands.ErrAssignShipmentsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
