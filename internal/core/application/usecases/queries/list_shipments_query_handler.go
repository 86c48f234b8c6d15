package queries

import (
	"context"
	"time"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// currentStatusJoin attaches the latest history event of each shipment as
// cur.status and cur.occurred_at.
const currentStatusJoin = `LEFT JOIN LATERAL (
	SELECT e.status, e.occurred_at
	FROM status_events AS e
	WHERE e.shipment_id = s.id
	ORDER BY e.occurred_at DESC, e.seq DESC
	LIMIT 1
) AS cur ON true`

// ListShipmentsQueryHandler serves shipment listings through the cache.
type ListShipmentsQueryHandler struct {
	db    *gorm.DB
	cache *coherency.Layer
}

func NewListShipmentsQueryHandler(db *gorm.DB, cache *coherency.Layer) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db, cache: cache}
}

type shipmentRow struct {
	ID           uuid.UUID
	TrackingCode string
	Address      string
	ProductType  string
	Height       float64
	Width        float64
	Length       float64
	Weight       float64
	Status       *string
	StatusAt     *time.Time
	RouteID      *uuid.UUID
	Origin       *string
	Destination  *string
	CreatedAt    time.Time
}

func (h ListShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentsQuery,
) (ListShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListShipmentsQueryResponse{}, err
	}

	key, err := coherency.ListingKey(coherency.Shipments, query.cacheParams())
	if err != nil {
		return ListShipmentsQueryResponse{}, errs.Internal(err)
	}
	return coherency.ReadThrough(ctx, h.cache, key, func(ctx context.Context) (ListShipmentsQueryResponse, error) {
		return h.load(ctx, query)
	})
}

func (h ListShipmentsQueryHandler) load(ctx context.Context, query ListShipmentsQuery) (ListShipmentsQueryResponse, error) {
	f := query.Filters()
	p := query.Pagination()

	base := func() *gorm.DB {
		q := h.db.WithContext(ctx).
			Table("shipments AS s").
			Joins("LEFT JOIN routes AS r ON r.id = s.route_id").
			Joins(currentStatusJoin).
			Where("s.active = ?", true)
		if f.Status != nil {
			q = q.Where("cur.status = ?", f.Status.Label())
		}
		if f.CarrierID != nil {
			q = q.Where("r.carrier_id = ?", f.CarrierID.Bytes())
		}
		if f.CreatedFrom != nil {
			q = q.Where("s.created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			q = q.Where("s.created_at <= ?", *f.CreatedTo)
		}
		if f.Search != "" {
			q = q.Where(
				"s.address ILIKE @p OR s.product_type ILIKE @p OR s.tracking_code ILIKE @p OR r.origin ILIKE @p OR r.destination ILIKE @p",
				map[string]any{"p": likePattern(f.Search)},
			)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ListShipmentsQueryResponse{}, errs.Internal(err)
	}

	var rows []shipmentRow
	err := base().
		Select(`s.id, s.tracking_code, s.address, s.product_type, s.height, s.width, s.length, s.weight,
			cur.status, cur.occurred_at AS status_at, s.route_id, r.origin, r.destination, s.created_at`).
		Order("s.created_at DESC, s.id").
		Limit(p.Size()).
		Offset(p.Offset()).
		Scan(&rows).Error
	if err != nil {
		return ListShipmentsQueryResponse{}, errs.Internal(err)
	}

	items := make([]ShipmentListItem, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return ListShipmentsQueryResponse{}, errs.Internal(err)
		}
		item := ShipmentListItem{
			ID:           id,
			TrackingCode: row.TrackingCode,
			Address:      row.Address,
			ProductType:  row.ProductType,
			Height:       row.Height,
			Width:        row.Width,
			Length:       row.Length,
			Weight:       row.Weight,
			StatusAt:     row.StatusAt,
			CreatedAt:    row.CreatedAt,
		}
		if row.Status != nil {
			item.Status = *row.Status
		}
		if row.RouteID != nil {
			routeID, err := kernel.UUIDFromBytes(row.RouteID[:])
			if err != nil {
				return ListShipmentsQueryResponse{}, errs.Internal(err)
			}
			item.RouteID = &routeID
		}
		if row.Origin != nil {
			item.Origin = *row.Origin
		}
		if row.Destination != nil {
			item.Destination = *row.Destination
		}
		items = append(items, item)
	}

	return ListShipmentsQueryResponse{Items: items, PageInfo: p.info(total)}, nil
}
