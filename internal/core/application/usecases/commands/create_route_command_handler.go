package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"
)

// CreateRouteCommandHandler plans routes. The vehicle and carrier must exist,
// be active and not be in transit.
type CreateRouteCommandHandler struct {
	uowFactory RouteUoWFactory
	cache      CacheInvalidator
}

func NewCreateRouteCommandHandler(uowFactory RouteUoWFactory, cache CacheInvalidator) CreateRouteCommandHandler {
	return CreateRouteCommandHandler{uowFactory: uowFactory, cache: cache}
}

func (h *CreateRouteCommandHandler) Handle(ctx context.Context, cmd CreateRouteCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	r, err := route.NewRoute(kernel.NewUUID(), cmd.CarrierID(), cmd.VehicleID(),
		cmd.Origin(), cmd.Destination(), time.Now().UTC())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	v, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}
	c, err := uow.CarrierRepository().Get(ctx, cmd.CarrierID())
	if err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}
	if err := errors.Join(v.CanDepart(), c.CanDepart()); err != nil {
		return kernel.UUID{}, err
	}

	if err := uow.RouteRepository().Add(ctx, r); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}

	h.cache.Invalidate(ctx, coherency.Routes)
	return r.ID(), nil
}
