package shipment

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

// ErrStatusEventIsNotConstructed is returned when using a zero-value StatusEvent.
var ErrStatusEventIsNotConstructed = errors.New("StatusEvent must be created via NewStatusEvent constructor")

// StatusEvent is one append-only entry of a shipment's status history.
type StatusEvent struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	status     Status
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

// NewStatusEvent records that shipmentID reached status at occurredAt.
func NewStatusEvent(shipmentID kernel.UUID, status Status, occurredAt time.Time) (*StatusEvent, error) {
	return RestoreStatusEvent(kernel.NewUUID(), shipmentID, status, occurredAt)
}

// NewStatusEventAfter is NewStatusEvent with occurredAt clamped so it never
// precedes the shipment's previous event. History timestamps therefore stay
// non-decreasing even when clocks disagree between writers.
func NewStatusEventAfter(shipmentID kernel.UUID, status Status, now time.Time, previous *StatusEvent) (*StatusEvent, error) {
	at := now
	if previous != nil && previous.occurredAt.After(at) {
		at = previous.occurredAt
	}
	return NewStatusEvent(shipmentID, status, at)
}

func RestoreStatusEvent(id, shipmentID kernel.UUID, status Status, occurredAt time.Time) (*StatusEvent, error) {
	if err := errors.Join(id.Validate(), shipmentID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &StatusEvent{
		id:         id,
		shipmentID: shipmentID,
		status:     status,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e *StatusEvent) Validate() error {
	if e == nil {
		return ErrStatusEventIsNotConstructed
	}
	return e.guard.Validate(ErrStatusEventIsNotConstructed)
}

func (e *StatusEvent) ID() kernel.UUID         { return e.id }
func (e *StatusEvent) ShipmentID() kernel.UUID { return e.shipmentID }
func (e *StatusEvent) Status() Status          { return e.status }
func (e *StatusEvent) OccurredAt() time.Time   { return e.occurredAt }
