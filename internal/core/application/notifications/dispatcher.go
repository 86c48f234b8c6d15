package notifications

import (
	"context"
	"encoding/json"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var published = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "notifications",
		Name:      "published_total",
		Help:      "Status snapshots published by outcome.",
	},
	[]string{"result"},
)

// SnapshotReader loads the current status of every shipment on a route.
type SnapshotReader interface {
	Handle(ctx context.Context, query queries.GetStatusSnapshotsQuery) ([]queries.StatusSnapshot, error)
}

// Dispatcher publishes the status snapshot of each shipment on a route to the
// topic named by the shipment's tracking code.
//
// Delivery is best effort and at most once: failures are logged and counted,
// never retried and never returned.
type Dispatcher struct {
	snapshots SnapshotReader
	notifier  ports.Notifier
	logger    *zap.Logger
}

func NewDispatcher(snapshots SnapshotReader, notifier ports.Notifier, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{snapshots: snapshots, notifier: notifier, logger: logger}
}

// RouteChanged publishes the snapshots of routeID's shipments. Call it only
// after the transition has committed.
func (d *Dispatcher) RouteChanged(ctx context.Context, routeID kernel.UUID) {
	query, err := queries.NewGetStatusSnapshotsQuery(routeID)
	if err != nil {
		d.logger.Error("invalid route for notification", zap.Error(err))
		return
	}

	snapshots, err := d.snapshots.Handle(ctx, query)
	if err != nil {
		published.WithLabelValues("error").Inc()
		d.logger.Warn("status snapshots unavailable, skipping notifications",
			zap.String("routeId", routeID.String()), zap.Error(err))
		return
	}

	for _, s := range snapshots {
		payload, err := json.Marshal(s)
		if err != nil {
			published.WithLabelValues("error").Inc()
			d.logger.Warn("status snapshot is not encodable", zap.String("trackingCode", s.TrackingCode), zap.Error(err))
			continue
		}
		if err := d.notifier.Publish(ctx, s.TrackingCode, payload); err != nil {
			published.WithLabelValues("error").Inc()
			d.logger.Warn("status notification failed",
				zap.String("trackingCode", s.TrackingCode), zap.Error(err))
			continue
		}
		published.WithLabelValues("ok").Inc()
	}

	d.logger.Debug("route notifications dispatched",
		zap.String("routeId", routeID.String()), zap.Int("shipments", len(snapshots)))
}
