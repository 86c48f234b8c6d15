package commands

import (
	"context"
	"time"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"
	"logistics/internal/pkg/errs"
)

type CreateVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
	cache      CacheInvalidator
}

func NewCreateVehicleCommandHandler(uowFactory VehicleUoWFactory, cache CacheInvalidator) CreateVehicleCommandHandler {
	return CreateVehicleCommandHandler{uowFactory: uowFactory, cache: cache}
}

func (h *CreateVehicleCommandHandler) Handle(ctx context.Context, cmd CreateVehicleCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	v, err := vehicle.NewVehicle(kernel.NewUUID(), cmd.Plate(), cmd.MaxWeight(), cmd.MaxVolume(), time.Now().UTC())
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

	if err := uow.VehicleRepository().Add(ctx, v); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}

	h.cache.Invalidate(ctx, coherency.Vehicles)
	return v.ID(), nil
}
