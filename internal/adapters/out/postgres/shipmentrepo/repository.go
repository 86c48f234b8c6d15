package shipmentrepo

import (
	"context"
	"fmt"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add inserts a shipment. A tracking code that is already taken is a
// Conflict so the caller can retry with a fresh code.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, TrackingCodeConstraint) {
			return errs.NewConflictErrorWithCause("shipment "+dto.TrackingCode, "tracking code is already taken", err)
		}
		return pgerr.Translate(err, "shipment "+aggregate.ID().String(), "shipment already exists")
	}
	return nil
}

// UpdateRoute binds shipments to routeID. Every shipment must already carry
// routeID and still be unassigned in storage; otherwise nothing is written
// and a Conflict is returned.
func (r *GormShipmentRepository) UpdateRoute(
	ctx context.Context,
	routeID kernel.UUID,
	shipments []*shipment.Shipment,
) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if len(shipments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(shipments))
	for _, s := range shipments {
		if err := s.Validate(); err != nil {
			return err
		}
		if !s.IsAssignedTo(routeID) {
			return errs.NewValueIsInvalidErrorWithCause("shipments",
				fmt.Errorf("%s is not assigned to route %s", s.TrackingCode(), routeID))
		}
		ids = append(ids, s.ID().Bytes())
	}

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id IN ? AND route_id IS NULL AND active = ?", ids, true).
		Update("route_id", routeID.Bytes())
	if result.Error != nil {
		return pgerr.Translate(result.Error, "route "+routeID.String(), "route does not accept shipments")
	}
	if result.RowsAffected != int64(len(ids)) {
		return errs.NewConflictError("route "+routeID.String(),
			fmt.Sprintf("%d of %d shipments were assigned concurrently", len(ids)-int(result.RowsAffected), len(ids)))
	}
	return nil
}

// Get resolves lookup against active shipments.
func (r *GormShipmentRepository) Get(ctx context.Context, lookup ports.ShipmentLookup) (*shipment.Shipment, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if id, ok := lookup.ID(); ok {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		q = q.Where("id = ?", id.Bytes())
	} else if code, ok := lookup.TrackingCode(); ok {
		if err := code.Validate(); err != nil {
			return nil, err
		}
		q = q.Where("tracking_code = ?", code.String())
	} else {
		return nil, errs.NewValueIsInvalidError("shipment lookup")
	}

	var dto ShipmentDTO
	if err := q.First(&dto).Error; err != nil {
		return nil, pgerr.NotFound(err, "shipment", lookup.String())
	}
	return toDomain(dto)
}

// GetByRouteForUpdate locks every active shipment on the route, in id order.
func (r *GormShipmentRepository) GetByRouteForUpdate(
	ctx context.Context,
	routeID kernel.UUID,
) ([]*shipment.Shipment, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}
	return r.lockAndLoad(r.db.WithContext(ctx).Where("route_id = ?", routeID.Bytes()))
}

// GetManyForUpdate locks the active shipments with the given ids, in id
// order. IDs that do not match an active shipment are left out.
func (r *GormShipmentRepository) GetManyForUpdate(
	ctx context.Context,
	ids []kernel.UUID,
) ([]*shipment.Shipment, error) {
	if len(ids) == 0 {
		return []*shipment.Shipment{}, nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}
	return r.lockAndLoad(r.db.WithContext(ctx).Where("id IN ?", raw))
}

func (r *GormShipmentRepository) lockAndLoad(q *gorm.DB) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := q.Where("active = ?", true).
		Order("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate(err, "shipments", "shipments are locked by another request")
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, errs.Internal(err)
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}
