// Package commands contains business operations that modify system state.
// Every handler follows the same sequence: validate the command, begin a unit
// of work, lock and load, run the domain guards, write, commit, and only then
// invalidate caches and notify.
package commands

import (
	"context"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CarrierRepoFactory interface {
		CarrierRepository() ports.CarrierRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	RouteRepoFactory interface {
		RouteRepository() ports.RouteRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	StatusEventRepoFactory interface {
		StatusEventRepository() ports.StatusEventRepository
	}

	// CarrierUoW manages transactions for carrier-only operations.
	CarrierUoW interface {
		TxManager
		CarrierRepoFactory
	}

	CarrierUoWFactory interface {
		Create() CarrierUoW
	}

	// VehicleUoW manages transactions for vehicle-only operations.
	VehicleUoW interface {
		TxManager
		VehicleRepoFactory
	}

	VehicleUoWFactory interface {
		Create() VehicleUoW
	}

	// ShipmentUoW covers registering a shipment together with its first
	// history event.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		StatusEventRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// RouteUoW manages transactions that span a route, its vehicle and
	// carrier, its shipments and their history.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r, err := uow.RouteRepository().GetForUpdate(ctx, routeID)
	//   v, err := uow.VehicleRepository().GetForUpdate(ctx, r.VehicleID())
	//   // ... evaluate guards, write
	//
	//   err = uow.Commit(ctx)
	RouteUoW interface {
		TxManager
		RouteRepoFactory
		VehicleRepoFactory
		CarrierRepoFactory
		ShipmentRepoFactory
		StatusEventRepoFactory
	}

	RouteUoWFactory interface {
		Create() RouteUoW
	}
)

// Side effects that run after a successful commit.
type (
	// CacheInvalidator drops cached reads made stale by a write.
	CacheInvalidator interface {
		Invalidate(ctx context.Context, prefixes ...coherency.Prefix)
		InvalidateHistory(ctx context.Context, codes ...kernel.TrackingCode)
	}

	// RouteNotifier tells subscribers about the shipments of a route whose
	// state changed.
	RouteNotifier interface {
		RouteChanged(ctx context.Context, routeID kernel.UUID)
	}
)
