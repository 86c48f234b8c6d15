package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetShipmentHistoryQueryIsNotConstructed = errors.New(
	"GetShipmentHistoryQuery must be created via NewGetShipmentHistoryQuery constructor",
)

// GetShipmentHistoryQuery returns the status history of one shipment, oldest
// event first.
type GetShipmentHistoryQuery struct {
	trackingCode kernel.TrackingCode
	guard        guard.ConstructorGuard
}

func NewGetShipmentHistoryQuery(trackingCode kernel.TrackingCode) (GetShipmentHistoryQuery, error) {
	if err := trackingCode.Validate(); err != nil {
		return GetShipmentHistoryQuery{}, err
	}
	return GetShipmentHistoryQuery{trackingCode: trackingCode, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentHistoryQueryIsNotConstructed)
}

func (q GetShipmentHistoryQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

type HistoryEvent struct {
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

type GetShipmentHistoryQueryResponse struct {
	TrackingCode string         `json:"trackingCode"`
	Events       []HistoryEvent `json:"events"`
}
