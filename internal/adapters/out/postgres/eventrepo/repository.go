package eventrepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatusEventRepository implements ports.StatusEventRepository using GORM.
// Rows are never updated or deleted.
type GormStatusEventRepository struct {
	db *gorm.DB
}

func NewGormStatusEventRepository(db *gorm.DB) *GormStatusEventRepository {
	return &GormStatusEventRepository{db: db}
}

// Append inserts events in argument order, so seq follows that order too.
func (r *GormStatusEventRepository) Append(ctx context.Context, events ...*shipment.StatusEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]StatusEventDTO, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerr.Translate(err, "status event", "event already recorded")
	}
	return nil
}

// Latest returns the most recent event of each shipment that has one. Ties
// on occurred_at go to the event appended last.
func (r *GormStatusEventRepository) Latest(
	ctx context.Context,
	shipmentIDs []kernel.UUID,
) (map[kernel.UUID]*shipment.StatusEvent, error) {
	latest := make(map[kernel.UUID]*shipment.StatusEvent, len(shipmentIDs))
	if len(shipmentIDs) == 0 {
		return latest, nil
	}

	raw := make([]uuid.UUID, 0, len(shipmentIDs))
	for _, id := range shipmentIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []StatusEventDTO
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (shipment_id) id, seq, shipment_id, status, occurred_at
			FROM status_events
			WHERE shipment_id IN ?
			ORDER BY shipment_id, occurred_at DESC, seq DESC`, raw).
		Scan(&dtos).Error
	if err != nil {
		return nil, errs.Internal(err)
	}

	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, errs.Internal(err)
		}
		latest[e.ShipmentID()] = e
	}
	return latest, nil
}
