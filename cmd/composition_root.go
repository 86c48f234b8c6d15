package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/in/ws"
	"logistics/internal/adapters/out/cache/localcache"
	"logistics/internal/adapters/out/cache/rediscache"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/rabbitmq"
	"logistics/internal/core/application/coherency"
	"logistics/internal/core/application/notifications"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type cacheStore interface {
	ports.Cache
	io.Closer
}

// CompositionRoot owns every long-lived resource and builds the handlers
// that share them.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger

	cache      cacheStore
	coherency  *coherency.Layer
	hub        *ws.Hub
	publisher  *rabbitmq.Publisher
	dispatcher *notifications.Dispatcher
}

// NewCompositionRoot connects the cache and, when configured, the broker.
// Close releases them; the database handle stays with the caller.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		hub:        ws.NewHub(logger.Named("ws")),
	}

	var err error
	if c.cache, err = openCache(ctx, cfg); err != nil {
		return nil, err
	}
	c.coherency = coherency.NewLayer(c.cache, cfg.CacheTTL, logger.Named("cache"))

	notifier := notifications.Fanout{c.hub}
	if cfg.AMQPURL != "" {
		if c.publisher, err = rabbitmq.Dial(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
			_ = c.cache.Close()
			return nil, err
		}
		notifier = append(notifier, c.publisher)
	}
	c.dispatcher = notifications.NewDispatcher(
		c.CreateGetStatusSnapshotsQueryHandler(), notifier, logger.Named("notifications"))

	return c, nil
}

func openCache(ctx context.Context, cfg Config) (cacheStore, error) {
	if cfg.RedisAddr == "" {
		cache, err := localcache.New(ctx, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		return cache, nil
	}
	cache, err := rediscache.New(ctx, rediscache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return cache, nil
}

func (c *CompositionRoot) Close() error {
	var err error
	if c.publisher != nil {
		err = c.publisher.Close()
	}
	return errors.Join(err, c.cache.Close())
}

func (c *CompositionRoot) CreateCreateCarrierCommandHandler() *commands.CreateCarrierCommandHandler {
	var f commands.CarrierUoWFactory = FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateCarrierCommandHandler(f, c.coherency)
	return &h
}

func (c *CompositionRoot) CreateCreateVehicleCommandHandler() *commands.CreateVehicleCommandHandler {
	var f commands.VehicleUoWFactory = FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateVehicleCommandHandler(f, c.coherency)
	return &h
}

func (c *CompositionRoot) CreateCreateRouteCommandHandler() *commands.CreateRouteCommandHandler {
	h := commands.NewCreateRouteCommandHandler(c.routeUoWFactory(), c.coherency)
	return &h
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() *commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateShipmentCommandHandler(f, c.coherency, c.cfg.TrackingCodeLength)
	return &h
}

func (c *CompositionRoot) CreateAssignShipmentsCommandHandler() *commands.AssignShipmentsCommandHandler {
	h := commands.NewAssignShipmentsCommandHandler(c.routeUoWFactory(), c.coherency)
	return &h
}

func (c *CompositionRoot) CreateChangeRouteStateCommandHandler() *commands.ChangeRouteStateCommandHandler {
	h := commands.NewChangeRouteStateCommandHandler(
		c.routeUoWFactory(), c.coherency, c.dispatcher, c.logger.Named("routes"))
	return &h
}

func (c *CompositionRoot) CreateListCarriersQueryHandler() queries.ListCarriersQueryHandler {
	return queries.NewListCarriersQueryHandler(c.gormDB, c.coherency)
}

func (c *CompositionRoot) CreateListVehiclesQueryHandler() queries.ListVehiclesQueryHandler {
	return queries.NewListVehiclesQueryHandler(c.gormDB, c.coherency)
}

func (c *CompositionRoot) CreateListRoutesQueryHandler() queries.ListRoutesQueryHandler {
	return queries.NewListRoutesQueryHandler(c.gormDB, c.coherency)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB, c.coherency)
}

func (c *CompositionRoot) CreateGetPendingRoutesQueryHandler() queries.GetPendingRoutesQueryHandler {
	return queries.NewGetPendingRoutesQueryHandler(c.gormDB, c.coherency)
}

func (c *CompositionRoot) CreateGetShipmentHistoryQueryHandler() queries.GetShipmentHistoryQueryHandler {
	return queries.NewGetShipmentHistoryQueryHandler(c.gormDB, c.coherency)
}

func (c *CompositionRoot) CreateGetStatusSnapshotsQueryHandler() queries.GetStatusSnapshotsQueryHandler {
	return queries.NewGetStatusSnapshotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateCarrier:    c.CreateCreateCarrierCommandHandler(),
		CreateVehicle:    c.CreateCreateVehicleCommandHandler(),
		CreateRoute:      c.CreateCreateRouteCommandHandler(),
		CreateShipment:   c.CreateCreateShipmentCommandHandler(),
		AssignShipments:  c.CreateAssignShipmentsCommandHandler(),
		ChangeRouteState: c.CreateChangeRouteStateCommandHandler(),
		ListCarriers:     c.CreateListCarriersQueryHandler(),
		ListVehicles:     c.CreateListVehiclesQueryHandler(),
		ListRoutes:       c.CreateListRoutesQueryHandler(),
		ListShipments:    c.CreateListShipmentsQueryHandler(),
		PendingRoutes:    c.CreateGetPendingRoutesQueryHandler(),
		ShipmentHistory:  c.CreateGetShipmentHistoryQueryHandler(),
	}, c.hub, c.logger.Named("http"))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetPendingRoutesQueryHandler(), c.cfg.CacheWarmupSchedule, c.logger.Named("jobs"))
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

type FuncCarrierUoWFactory func() commands.CarrierUoW

func (f FuncCarrierUoWFactory) Create() commands.CarrierUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}
