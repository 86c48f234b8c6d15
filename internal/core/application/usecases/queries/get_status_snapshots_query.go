package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetStatusSnapshotsQueryIsNotConstructed = errors.New(
	"GetStatusSnapshotsQuery must be created via NewGetStatusSnapshotsQuery constructor",
)

// GetStatusSnapshotsQuery reads the current status of every shipment on a
// route. It bypasses the cache: snapshots are read right after a transition
// commits and must reflect it.
type GetStatusSnapshotsQuery struct {
	routeID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetStatusSnapshotsQuery(routeID kernel.UUID) (GetStatusSnapshotsQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetStatusSnapshotsQuery{}, err
	}
	return GetStatusSnapshotsQuery{routeID: routeID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStatusSnapshotsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusSnapshotsQueryIsNotConstructed)
}

func (q GetStatusSnapshotsQuery) RouteID() kernel.UUID {
	return q.routeID
}

// StatusSnapshot is the payload pushed to a tracking code's subscribers.
type StatusSnapshot struct {
	TrackingCode string    `json:"trackingCode"`
	State        string    `json:"state"`
	Timestamp    time.Time `json:"timestamp"`
	Address      string    `json:"address"`
}
