// Package eventrepo stores the append-only status history of shipments in
// the status_events table.
package eventrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// StatusEventDTO is the row shape of the status_events table. Seq is assigned
// by the database and orders events that share a timestamp.
type StatusEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_status_events_latest,priority:1"`
	Status     string    `gorm:"type:varchar(32);not null"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null;index:idx_status_events_latest,priority:2,sort:desc"`
}

func (StatusEventDTO) TableName() string {
	return "status_events"
}

func fromDomain(e *shipment.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		ID:         e.ID().Bytes(),
		ShipmentID: e.ShipmentID().Bytes(),
		Status:     e.Status().Label(),
		OccurredAt: e.OccurredAt(),
	}
}

func toDomain(dto StatusEventDTO) (*shipment.StatusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	status, err := shipment.StatusFromLabel(dto.Status)
	if err != nil {
		return nil, err
	}
	return shipment.RestoreStatusEvent(id, shipmentID, status, dto.OccurredAt.UTC())
}
