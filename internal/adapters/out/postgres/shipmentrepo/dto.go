// Package shipmentrepo persists the Shipment aggregate in the shipments table.
package shipmentrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// TrackingCodeConstraint is the unique index on tracking codes. Hitting it on
// insert means the generated code was already handed out.
const TrackingCodeConstraint = "idx_shipments_tracking_code"

// ShipmentDTO is the row shape of the shipments table.
type ShipmentDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_shipments_tracking_code"`
	Address      string     `gorm:"type:varchar(255);not null"`
	Height       float64    `gorm:"type:double precision;not null"`
	Width        float64    `gorm:"type:double precision;not null"`
	Length       float64    `gorm:"type:double precision;not null"`
	Weight       float64    `gorm:"type:double precision;not null"`
	ProductType  string     `gorm:"type:varchar(255);not null"`
	RouteID      *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null;index"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	var routeID *uuid.UUID
	if s.RouteID() != nil {
		raw := s.RouteID().Bytes()
		routeID = &raw
	}

	dims := s.Dimensions()
	return ShipmentDTO{
		ID:           s.ID().Bytes(),
		TrackingCode: s.TrackingCode().String(),
		Address:      s.Address(),
		Height:       dims.Height(),
		Width:        dims.Width(),
		Length:       dims.Length(),
		Weight:       s.Weight(),
		ProductType:  s.ProductType(),
		RouteID:      routeID,
		Active:       s.IsActive(),
		CreatedAt:    s.CreatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	code, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}
	dims, err := kernel.NewDimensions(dto.Height, dto.Width, dto.Length)
	if err != nil {
		return nil, err
	}

	var routeID *kernel.UUID
	if dto.RouteID != nil {
		rID, err := kernel.UUIDFromBytes((*dto.RouteID)[:])
		if err != nil {
			return nil, err
		}
		routeID = &rID
	}

	return shipment.RestoreShipment(id, code, dto.Address, dims, dto.Weight, dto.ProductType,
		routeID, dto.Active, dto.CreatedAt.UTC())
}
