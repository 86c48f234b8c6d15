package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type NewCarrier struct {
	LicenseID string `json:"licenseId"`
	Name      string `json:"name"`
}

type NewVehicle struct {
	Plate     string  `json:"plate"`
	MaxWeight float64 `json:"maxWeight"`
	MaxVolume float64 `json:"maxVolume"`
}

type Created struct {
	ID kernel.UUID `json:"id"`
}

// CreateCarrier handles POST /api/v1/carriers.
func (s *Server) CreateCarrier(c echo.Context) error {
	var body NewCarrier
	if err := bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateCarrierCommand(body.LicenseID, body.Name)
	if err != nil {
		return err
	}
	id, err := s.h.CreateCarrier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// ListCarriers handles GET /api/v1/carriers.
func (s *Server) ListCarriers(c echo.Context) error {
	params := c.QueryParams()
	page, err := pagination(params)
	if err != nil {
		return err
	}
	inTransit, err := query[bool](params, "inTransit")
	if err != nil {
		return err
	}
	search, err := queryString(params, "search")
	if err != nil {
		return err
	}

	res, err := s.h.ListCarriers.Handle(c.Request().Context(), queries.NewListCarriersQuery(page, inTransit, search))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// CreateVehicle handles POST /api/v1/vehicles.
func (s *Server) CreateVehicle(c echo.Context) error {
	var body NewVehicle
	if err := bind(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateVehicleCommand(body.Plate, body.MaxWeight, body.MaxVolume)
	if err != nil {
		return err
	}
	id, err := s.h.CreateVehicle.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// ListVehicles handles GET /api/v1/vehicles.
func (s *Server) ListVehicles(c echo.Context) error {
	params := c.QueryParams()
	page, err := pagination(params)
	if err != nil {
		return err
	}
	inTransit, err := query[bool](params, "inTransit")
	if err != nil {
		return err
	}
	search, err := queryString(params, "search")
	if err != nil {
		return err
	}

	res, err := s.h.ListVehicles.Handle(c.Request().Context(), queries.NewListVehiclesQuery(page, inTransit, search))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
