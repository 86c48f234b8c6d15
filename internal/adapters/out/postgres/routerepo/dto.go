// Package routerepo persists the Route aggregate in the routes table.
package routerepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"

	"github.com/google/uuid"
)

// RouteDTO is the row shape of the routes table. State is stored by name.
type RouteDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Origin      string     `gorm:"type:varchar(255);not null"`
	Destination string     `gorm:"type:varchar(255);not null"`
	State       string     `gorm:"type:varchar(16);not null;index"`
	CarrierID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	VehicleID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartedAt   *time.Time `gorm:"type:timestamptz"`
	FinishedAt  *time.Time `gorm:"type:timestamptz"`
	Active      bool       `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null;index"`
}

func (RouteDTO) TableName() string {
	return "routes"
}

func fromDomain(r *route.Route) RouteDTO {
	return RouteDTO{
		ID:          r.ID().Bytes(),
		Origin:      r.Origin(),
		Destination: r.Destination(),
		State:       r.State().String(),
		CarrierID:   r.CarrierID().Bytes(),
		VehicleID:   r.VehicleID().Bytes(),
		StartedAt:   r.StartedAt(),
		FinishedAt:  r.FinishedAt(),
		Active:      r.IsActive(),
		CreatedAt:   r.CreatedAt(),
	}
}

func toDomain(dto RouteDTO) (*route.Route, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}
	state, err := route.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	return route.RestoreRoute(id, carrierID, vehicleID, dto.Origin, dto.Destination, state,
		utc(dto.StartedAt), utc(dto.FinishedAt), dto.Active, dto.CreatedAt.UTC())
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
