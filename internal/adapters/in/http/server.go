// Package http exposes the routing use cases over a JSON API.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server translates HTTP requests into commands and queries. It holds no
// state of its own.
type Server struct {
	h      Handlers
	stream StatusStream
	logger *zap.Logger
}

func NewServer(handlers Handlers, stream StatusStream, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{h: handlers, stream: stream, logger: logger}
}

// Echo builds the router with every endpoint registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(s.logger)
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws/shipments/:code", s.StreamShipmentStatus)

	api := e.Group("/api/v1")

	api.POST("/carriers", s.CreateCarrier)
	api.GET("/carriers", s.ListCarriers)

	api.POST("/vehicles", s.CreateVehicle)
	api.GET("/vehicles", s.ListVehicles)

	api.POST("/routes", s.CreateRoute)
	api.GET("/routes", s.ListRoutes)
	api.GET("/routes/pending", s.GetPendingRoutes)
	api.POST("/routes/:routeId/shipments", s.AssignShipments)
	api.PATCH("/routes/:routeId/state", s.ChangeRouteState)

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.ListShipments)
	api.GET("/shipments/:code/history", s.GetShipmentHistory)

	return e
}

// StreamShipmentStatus handles GET /ws/shipments/:code.
func (s *Server) StreamShipmentStatus(c echo.Context) error {
	code, err := pathTrackingCode("code", c.Param("code"))
	if err != nil {
		return err
	}
	if err := s.stream.Serve(c.Response(), c.Request(), code); err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
	}
	return nil
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}
