package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// MaxTrackingCodeAttempts bounds how many fresh codes are tried when the
// generated one is already taken.
const MaxTrackingCodeAttempts = 5

// CreateShipmentCommandHandler registers shipments with a generated tracking
// code and the initial "waiting" history event in one transaction.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	cache      CacheInvalidator
	codeLength int
}

// NewCreateShipmentCommandHandler uses kernel.DefaultTrackingCodeLength when
// codeLength is zero.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache CacheInvalidator,
	codeLength int,
) CreateShipmentCommandHandler {
	if codeLength == 0 {
		codeLength = kernel.DefaultTrackingCodeLength
	}
	return CreateShipmentCommandHandler{uowFactory: uowFactory, cache: cache, codeLength: codeLength}
}

func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (kernel.TrackingCode, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingCode{}, err
	}

	var lastConflict error
	for range MaxTrackingCodeAttempts {
		code, err := h.tryCreate(ctx, cmd)
		if err == nil {
			h.cache.Invalidate(ctx, coherency.Shipments)
			return code, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return kernel.TrackingCode{}, err
		}
		lastConflict = err
	}

	return kernel.TrackingCode{}, errs.NewInternalError(
		fmt.Errorf("no free tracking code after %d attempts: %w", MaxTrackingCodeAttempts, lastConflict))
}

// tryCreate runs one attempt in its own unit of work so a unique violation
// does not poison the next attempt's transaction.
func (h *CreateShipmentCommandHandler) tryCreate(ctx context.Context, cmd CreateShipmentCommand) (kernel.TrackingCode, error) {
	now := time.Now().UTC()
	code, err := kernel.NewTrackingCode(now, h.codeLength)
	if err != nil {
		return kernel.TrackingCode{}, err
	}

	s, err := shipment.NewShipment(kernel.NewUUID(), code, cmd.Address(), cmd.Dimensions(),
		cmd.Weight(), cmd.ProductType(), now)
	if err != nil {
		return kernel.TrackingCode{}, err
	}
	initial, err := s.InitialEvent()
	if err != nil {
		return kernel.TrackingCode{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.TrackingCode{}, errs.Internal(err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Add(ctx, s); err != nil {
		return kernel.TrackingCode{}, errs.Internal(err)
	}
	if err := uow.StatusEventRepository().Append(ctx, initial); err != nil {
		return kernel.TrackingCode{}, errs.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return kernel.TrackingCode{}, errs.Internal(err)
	}

	return code, nil
}
