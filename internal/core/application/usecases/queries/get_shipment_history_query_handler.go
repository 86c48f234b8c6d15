package queries

import (
	"context"

	"logistics/internal/core/application/coherency"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentHistoryQueryHandler serves status histories cached per tracking
// code.
type GetShipmentHistoryQueryHandler struct {
	db    *gorm.DB
	cache *coherency.Layer
}

func NewGetShipmentHistoryQueryHandler(db *gorm.DB, cache *coherency.Layer) GetShipmentHistoryQueryHandler {
	return GetShipmentHistoryQueryHandler{db: db, cache: cache}
}

// Handle returns an errs.ObjectNotFoundError for unknown or retired
// shipments. Misses are not cached.
func (h GetShipmentHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentHistoryQuery,
) (GetShipmentHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentHistoryQueryResponse{}, err
	}

	key := coherency.HistoryKey(query.TrackingCode())
	return coherency.ReadThrough(ctx, h.cache, key, func(ctx context.Context) (GetShipmentHistoryQueryResponse, error) {
		return h.load(ctx, query)
	})
}

func (h GetShipmentHistoryQueryHandler) load(
	ctx context.Context,
	query GetShipmentHistoryQuery,
) (GetShipmentHistoryQueryResponse, error) {
	code := query.TrackingCode().String()

	var exists int64
	err := h.db.WithContext(ctx).
		Table("shipments").
		Where("tracking_code = ? AND active = ?", code, true).
		Count(&exists).Error
	if err != nil {
		return GetShipmentHistoryQueryResponse{}, errs.Internal(err)
	}
	if exists == 0 {
		return GetShipmentHistoryQueryResponse{}, errs.NewObjectNotFoundError("shipment", code)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT e.status, e.occurred_at
		FROM status_events AS e
		JOIN shipments AS s ON s.id = e.shipment_id
		WHERE s.tracking_code = ?
		ORDER BY e.occurred_at, e.seq
	`, code).Rows()
	if err != nil {
		return GetShipmentHistoryQueryResponse{}, errs.Internal(err)
	}
	defer rows.Close()

	resp := GetShipmentHistoryQueryResponse{TrackingCode: code, Events: make([]HistoryEvent, 0)}
	for rows.Next() {
		var e HistoryEvent
		if err := rows.Scan(&e.Status, &e.OccurredAt); err != nil {
			return GetShipmentHistoryQueryResponse{}, errs.Internal(err)
		}
		resp.Events = append(resp.Events, e)
	}
	if err := rows.Err(); err != nil {
		return GetShipmentHistoryQueryResponse{}, errs.Internal(err)
	}
	return resp, nil
}
