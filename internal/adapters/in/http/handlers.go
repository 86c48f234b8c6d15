package http

import (
	"context"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/services"
)

type CreateCarrierHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCarrierCommand) (kernel.UUID, error)
}

type CreateVehicleHandler interface {
	Handle(ctx context.Context, cmd commands.CreateVehicleCommand) (kernel.UUID, error)
}

type CreateRouteHandler interface {
	Handle(ctx context.Context, cmd commands.CreateRouteCommand) (kernel.UUID, error)
}

type CreateShipmentHandler interface {
	Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (kernel.TrackingCode, error)
}

type AssignShipmentsHandler interface {
	Handle(ctx context.Context, cmd commands.AssignShipmentsCommand) (services.Load, error)
}

type ChangeRouteStateHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeRouteStateCommand) (commands.ChangeRouteStateResult, error)
}

type ListCarriersHandler interface {
	Handle(ctx context.Context, query queries.ListCarriersQuery) (queries.ListCarriersQueryResponse, error)
}

type ListVehiclesHandler interface {
	Handle(ctx context.Context, query queries.ListVehiclesQuery) (queries.ListVehiclesQueryResponse, error)
}

type ListRoutesHandler interface {
	Handle(ctx context.Context, query queries.ListRoutesQuery) (queries.ListRoutesQueryResponse, error)
}

type ListShipmentsHandler interface {
	Handle(ctx context.Context, query queries.ListShipmentsQuery) (queries.ListShipmentsQueryResponse, error)
}

type PendingRoutesHandler interface {
	Handle(ctx context.Context, query queries.GetPendingRoutesQuery) ([]queries.PendingRoute, error)
}

type ShipmentHistoryHandler interface {
	Handle(ctx context.Context, query queries.GetShipmentHistoryQuery) (queries.GetShipmentHistoryQueryResponse, error)
}

// StatusStream serves a websocket that follows one tracking code.
type StatusStream interface {
	Serve(w http.ResponseWriter, r *http.Request, code kernel.TrackingCode) error
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateCarrier    CreateCarrierHandler
	CreateVehicle    CreateVehicleHandler
	CreateRoute      CreateRouteHandler
	CreateShipment   CreateShipmentHandler
	AssignShipments  AssignShipmentsHandler
	ChangeRouteState ChangeRouteStateHandler

	ListCarriers    ListCarriersHandler
	ListVehicles    ListVehiclesHandler
	ListRoutes      ListRoutesHandler
	ListShipments   ListShipmentsHandler
	PendingRoutes   PendingRoutesHandler
	ShipmentHistory ShipmentHistoryHandler
}
