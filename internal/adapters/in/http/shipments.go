package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

type NewShipment struct {
	Address     string  `json:"address"`
	Height      float64 `json:"height"`
	Width       float64 `json:"width"`
	Length      float64 `json:"length"`
	Weight      float64 `json:"weight"`
	ProductType string  `json:"productType"`
}

type CreatedShipment struct {
	TrackingCode string `json:"trackingCode"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(c echo.Context) error {
	var body NewShipment
	if err := bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateShipmentCommand(
		body.Address, body.Height, body.Width, body.Length, body.Weight, body.ProductType)
	if err != nil {
		return err
	}
	code, err := s.h.CreateShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedShipment{TrackingCode: code.String()})
}

// ListShipments handles GET /api/v1/shipments.
func (s *Server) ListShipments(c echo.Context) error {
	params := c.QueryParams()
	page, err := pagination(params)
	if err != nil {
		return err
	}
	filters, err := shipmentFilters(params)
	if err != nil {
		return err
	}
	q, err := queries.NewListShipmentsQuery(page, filters)
	if err != nil {
		return err
	}

	res, err := s.h.ListShipments.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// GetShipmentHistory handles GET /api/v1/shipments/:code/history.
func (s *Server) GetShipmentHistory(c echo.Context) error {
	code, err := pathTrackingCode("code", c.Param("code"))
	if err != nil {
		return err
	}
	q, err := queries.NewGetShipmentHistoryQuery(code)
	if err != nil {
		return err
	}

	res, err := s.h.ShipmentHistory.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
