package commands

import (
	"context"
	"time"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// CreateCarrierCommandHandler registers carriers. A duplicate license is a
// conflict reported by the repository.
type CreateCarrierCommandHandler struct {
	uowFactory CarrierUoWFactory
	cache      CacheInvalidator
}

func NewCreateCarrierCommandHandler(uowFactory CarrierUoWFactory, cache CacheInvalidator) CreateCarrierCommandHandler {
	return CreateCarrierCommandHandler{uowFactory: uowFactory, cache: cache}
}

func (h *CreateCarrierCommandHandler) Handle(ctx context.Context, cmd CreateCarrierCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	c, err := carrier.NewCarrier(kernel.NewUUID(), cmd.LicenseID(), cmd.Name(), time.Now().UTC())
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

	if err := uow.CarrierRepository().Add(ctx, c); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.UUID{}, errs.Internal(err)
	}

	h.cache.Invalidate(ctx, coherency.Carriers)
	return c.ID(), nil
}
