package commands

import (
	"context"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// AssignShipmentsCommandHandler binds shipments to a route under the vehicle's
// capacity limits.
//
// The route row is locked first, so concurrent assignments to one route run
// one after the other and each sees the totals the previous one committed.
// Assignment is all-or-nothing.
type AssignShipmentsCommandHandler struct {
	uowFactory RouteUoWFactory
	cache      CacheInvalidator
	validator  services.CapacityValidator
}

func NewAssignShipmentsCommandHandler(uowFactory RouteUoWFactory, cache CacheInvalidator) AssignShipmentsCommandHandler {
	return AssignShipmentsCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		validator:  services.NewCapacityValidator(),
	}
}

// Handle returns the route's load after the assignment.
func (h *AssignShipmentsCommandHandler) Handle(ctx context.Context, cmd AssignShipmentsCommand) (services.Load, error) {
	if err := cmd.Validate(); err != nil {
		return services.Load{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Load{}, errs.Internal(err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RouteRepository().GetForUpdate(ctx, cmd.RouteID())
	if err != nil {
		return services.Load{}, errs.Internal(err)
	}
	if err := r.ValidateAcceptsShipments(); err != nil {
		return services.Load{}, err
	}

	v, err := uow.VehicleRepository().Get(ctx, r.VehicleID())
	if err != nil {
		return services.Load{}, errs.Internal(err)
	}

	shipmentRepo := uow.ShipmentRepository()
	assigned, err := shipmentRepo.GetByRouteForUpdate(ctx, r.ID())
	if err != nil {
		return services.Load{}, errs.Internal(err)
	}
	candidates, err := h.lockCandidates(ctx, shipmentRepo, cmd.ShipmentIDs())
	if err != nil {
		return services.Load{}, err
	}

	load, err := h.validator.Assign(v, r.ID(), assigned, candidates)
	if err != nil {
		return services.Load{}, err
	}

	if err := shipmentRepo.UpdateRoute(ctx, r.ID(), candidates); err != nil {
		return services.Load{}, errs.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return services.Load{}, errs.Internal(err)
	}

	h.cache.Invalidate(ctx, coherency.Routes, coherency.Shipments)
	return load, nil
}

// lockCandidates locks the candidates and returns them in request order.
func (h *AssignShipmentsCommandHandler) lockCandidates(
	ctx context.Context,
	repo ports.ShipmentRepository,
	ids []kernel.UUID,
) ([]*shipment.Shipment, error) {
	found, err := repo.GetManyForUpdate(ctx, ids)
	if err != nil {
		return nil, errs.Internal(err)
	}

	byID := make(map[kernel.UUID]*shipment.Shipment, len(found))
	for _, s := range found {
		byID[s.ID()] = s
	}

	ordered := make([]*shipment.Shipment, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
