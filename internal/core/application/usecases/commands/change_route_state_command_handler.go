package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ChangeRouteStateResult describes a committed transition.
type ChangeRouteStateResult struct {
	RouteID       kernel.UUID
	State         route.State
	StartedAt     *time.Time
	FinishedAt    *time.Time
	TrackingCodes []kernel.TrackingCode
}

// ChangeRouteStateCommandHandler advances a route through
// Pending -> InTransit -> Completed.
//
// The route, its vehicle, its carrier and its shipments are locked in that
// order for the whole transaction. Subscribers are notified only after commit.
type ChangeRouteStateCommandHandler struct {
	uowFactory RouteUoWFactory
	cache      CacheInvalidator
	notifier   RouteNotifier
	lifecycle  services.RouteLifecycle
	logger     *zap.Logger
	now        func() time.Time
}

func NewChangeRouteStateCommandHandler(
	uowFactory RouteUoWFactory,
	cache CacheInvalidator,
	notifier RouteNotifier,
	logger *zap.Logger,
) ChangeRouteStateCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ChangeRouteStateCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   notifier,
		lifecycle:  services.NewRouteLifecycle(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h *ChangeRouteStateCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeRouteStateCommand,
) (ChangeRouteStateResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeRouteStateResult{}, err
	}

	result, err := h.transition(ctx, cmd)
	if err != nil {
		routeTransitions.WithLabelValues(cmd.Target().String(), "rejected").Inc()
		return ChangeRouteStateResult{}, err
	}
	routeTransitions.WithLabelValues(cmd.Target().String(), "ok").Inc()

	h.cache.Invalidate(ctx, coherency.Routes, coherency.Shipments, coherency.Vehicles, coherency.Carriers)
	h.cache.InvalidateHistory(ctx, result.TrackingCodes...)
	h.notifier.RouteChanged(ctx, result.RouteID)

	h.logger.Info("route state changed",
		zap.Stringer("route_id", result.RouteID),
		zap.Stringer("state", result.State),
		zap.Int("shipments", len(result.TrackingCodes)),
	)
	return result, nil
}

func (h *ChangeRouteStateCommandHandler) transition(
	ctx context.Context,
	cmd ChangeRouteStateCommand,
) (ChangeRouteStateResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RouteRepository().GetForUpdate(ctx, cmd.RouteID())
	if err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	v, err := uow.VehicleRepository().GetForUpdate(ctx, r.VehicleID())
	if err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	c, err := uow.CarrierRepository().GetForUpdate(ctx, r.CarrierID())
	if err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}

	if cmd.Target() == route.InTransit {
		if err := h.ensureNoOtherDeparture(ctx, uow.RouteRepository(), r); err != nil {
			return ChangeRouteStateResult{}, err
		}
	}

	shipments, err := uow.ShipmentRepository().GetByRouteForUpdate(ctx, r.ID())
	if err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	ids := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		ids = append(ids, s.ID())
	}
	latest, err := uow.StatusEventRepository().Latest(ctx, ids)
	if err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}

	events, err := h.lifecycle.Transition(r, v, c, shipments, latest, cmd.Target(), h.now())
	if err != nil {
		return ChangeRouteStateResult{}, err
	}

	if err := uow.RouteRepository().Update(ctx, r); err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	if err := uow.VehicleRepository().Update(ctx, v); err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	if err := uow.CarrierRepository().Update(ctx, c); err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	if err := uow.StatusEventRepository().Append(ctx, events...); err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}
	if err := uow.Commit(ctx); err != nil {
		return ChangeRouteStateResult{}, errs.Internal(err)
	}

	return ChangeRouteStateResult{
		RouteID:       r.ID(),
		State:         r.State(),
		StartedAt:     r.StartedAt(),
		FinishedAt:    r.FinishedAt(),
		TrackingCodes: trackingCodes(shipments),
	}, nil
}

// ensureNoOtherDeparture rejects a departure while the vehicle or the carrier
// is already driving another route.
func (h *ChangeRouteStateCommandHandler) ensureNoOtherDeparture(
	ctx context.Context,
	repo ports.RouteRepository,
	r *route.Route,
) error {
	lookups := []ports.RouteLookup{
		ports.RoutesInTransitByVehicle(r.VehicleID()),
		ports.RoutesInTransitByCarrier(r.CarrierID()),
	}
	for _, lookup := range lookups {
		busy, err := repo.Find(ctx, lookup)
		if err != nil {
			return errs.Internal(err)
		}
		for _, other := range busy {
			if !other.IsEqual(r) {
				return errs.NewConflictError("route "+r.ID().String(),
					"route "+other.ID().String()+" is already in transit with the same "+lookupSubject(lookup))
			}
		}
	}
	return nil
}

func lookupSubject(l ports.RouteLookup) string {
	if _, ok := l.VehicleID(); ok {
		return "vehicle"
	}
	return "carrier"
}

func trackingCodes(shipments []*shipment.Shipment) []kernel.TrackingCode {
	codes := make([]kernel.TrackingCode, 0, len(shipments))
	for _, s := range shipments {
		codes = append(codes, s.TrackingCode())
	}
	return codes
}
