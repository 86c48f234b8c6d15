package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"

	"github.com/labstack/echo/v4"
)

type NewRoute struct {
	CarrierID   string `json:"carrierId"`
	VehicleID   string `json:"vehicleId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type ShipmentAssignment struct {
	ShipmentIDs []string `json:"shipmentIds"`
}

type RouteLoad struct {
	RouteID kernel.UUID `json:"routeId"`
	Volume  float64     `json:"volume"`
	Weight  float64     `json:"weight"`
}

type StateChange struct {
	State string `json:"state"`
}

type RouteState struct {
	ID            kernel.UUID `json:"id"`
	State         string      `json:"state"`
	StartedAt     *time.Time  `json:"startedAt,omitempty"`
	FinishedAt    *time.Time  `json:"finishedAt,omitempty"`
	TrackingCodes []string    `json:"trackingCodes"`
}

// CreateRoute handles POST /api/v1/routes.
func (s *Server) CreateRoute(c echo.Context) error {
	var body NewRoute
	if err := bind(c, &body); err != nil {
		return err
	}

	carrierID, err := parseUUID("carrierId", body.CarrierID)
	if err != nil {
		return err
	}
	vehicleID, err := parseUUID("vehicleId", body.VehicleID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateRouteCommand(carrierID, vehicleID, body.Origin, body.Destination)
	if err != nil {
		return err
	}

	id, err := s.h.CreateRoute.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// ListRoutes handles GET /api/v1/routes.
func (s *Server) ListRoutes(c echo.Context) error {
	params := c.QueryParams()
	page, err := pagination(params)
	if err != nil {
		return err
	}
	filters, err := routeFilters(params)
	if err != nil {
		return err
	}
	q, err := queries.NewListRoutesQuery(page, filters)
	if err != nil {
		return err
	}

	res, err := s.h.ListRoutes.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// GetPendingRoutes handles GET /api/v1/routes/pending.
func (s *Server) GetPendingRoutes(c echo.Context) error {
	res, err := s.h.PendingRoutes.Handle(c.Request().Context(), queries.NewGetPendingRoutesQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// AssignShipments handles POST /api/v1/routes/:routeId/shipments.
func (s *Server) AssignShipments(c echo.Context) error {
	routeID, err := pathUUID("routeId", c.Param("routeId"))
	if err != nil {
		return err
	}
	var body ShipmentAssignment
	if err := bind(c, &body); err != nil {
		return err
	}

	ids := make([]kernel.UUID, 0, len(body.ShipmentIDs))
	for _, raw := range body.ShipmentIDs {
		id, err := parseUUID("shipmentIds", raw)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	cmd, err := commands.NewAssignShipmentsCommand(routeID, ids)
	if err != nil {
		return err
	}

	load, err := s.h.AssignShipments.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RouteLoad{RouteID: routeID, Volume: load.Volume, Weight: load.Weight})
}

// ChangeRouteState handles PATCH /api/v1/routes/:routeId/state.
func (s *Server) ChangeRouteState(c echo.Context) error {
	routeID, err := pathUUID("routeId", c.Param("routeId"))
	if err != nil {
		return err
	}
	var body StateChange
	if err := bind(c, &body); err != nil {
		return err
	}

	target, err := route.ParseState(body.State)
	if err != nil {
		return err
	}
	cmd, err := commands.NewChangeRouteStateCommand(routeID, target)
	if err != nil {
		return err
	}

	res, err := s.h.ChangeRouteState.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	codes := make([]string, len(res.TrackingCodes))
	for i, code := range res.TrackingCodes {
		codes[i] = code.String()
	}
	return c.JSON(http.StatusOK, RouteState{
		ID:            res.RouteID,
		State:         res.State.String(),
		StartedAt:     res.StartedAt,
		FinishedAt:    res.FinishedAt,
		TrackingCodes: codes,
	})
}
