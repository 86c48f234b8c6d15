// Package carrierrepo persists the Carrier aggregate in the carriers table.
package carrierrepo

import (
	"time"

	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CarrierDTO is the row shape of the carriers table.
type CarrierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LicenseID string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_carriers_license_id"`
	Name      string    `gorm:"type:varchar(100);not null;index"`
	InTransit bool      `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (CarrierDTO) TableName() string {
	return "carriers"
}

func fromDomain(c *carrier.Carrier) CarrierDTO {
	return CarrierDTO{
		ID:        c.ID().Bytes(),
		LicenseID: c.LicenseID(),
		Name:      c.Name(),
		InTransit: c.InTransit(),
		Active:    c.IsActive(),
		CreatedAt: c.CreatedAt(),
	}
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return carrier.RestoreCarrier(id, dto.LicenseID, dto.Name, dto.InTransit, dto.Active, dto.CreatedAt.UTC())
}
