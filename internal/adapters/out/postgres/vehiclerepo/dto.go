// Package vehiclerepo persists the Vehicle aggregate in the vehicles table.
package vehiclerepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO is the row shape of the vehicles table.
type VehicleDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Plate     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_vehicles_plate"`
	MaxWeight float64   `gorm:"type:double precision;not null;check:chk_vehicles_max_weight,max_weight > 0"`
	MaxVolume float64   `gorm:"type:double precision;not null;check:chk_vehicles_max_volume,max_volume > 0"`
	InTransit bool      `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:        v.ID().Bytes(),
		Plate:     v.Plate(),
		MaxWeight: v.MaxWeight(),
		MaxVolume: v.MaxVolume(),
		InTransit: v.InTransit(),
		Active:    v.IsActive(),
		CreatedAt: v.CreatedAt(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return vehicle.RestoreVehicle(id, dto.Plate, dto.MaxWeight, dto.MaxVolume,
		dto.InTransit, dto.Active, dto.CreatedAt.UTC())
}
