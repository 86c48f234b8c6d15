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

// ListRoutesQueryHandler serves route listings through the cache.
type ListRoutesQueryHandler struct {
	db    *gorm.DB
	cache *coherency.Layer
}

func NewListRoutesQueryHandler(db *gorm.DB, cache *coherency.Layer) ListRoutesQueryHandler {
	return ListRoutesQueryHandler{db: db, cache: cache}
}

type routeRow struct {
	ID           uuid.UUID
	Origin       string
	Destination  string
	State        string
	StartedAt    *time.Time
	FinishedAt   *time.Time
	CreatedAt    time.Time
	CarrierID    uuid.UUID
	CarrierName  string
	LicenseID    string
	VehicleID    uuid.UUID
	VehiclePlate string
}

func (h ListRoutesQueryHandler) Handle(ctx context.Context, query ListRoutesQuery) (ListRoutesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListRoutesQueryResponse{}, err
	}

	key, err := coherency.ListingKey(coherency.Routes, query.cacheParams())
	if err != nil {
		return ListRoutesQueryResponse{}, errs.Internal(err)
	}
	return coherency.ReadThrough(ctx, h.cache, key, func(ctx context.Context) (ListRoutesQueryResponse, error) {
		return h.load(ctx, query)
	})
}

func (h ListRoutesQueryHandler) load(ctx context.Context, query ListRoutesQuery) (ListRoutesQueryResponse, error) {
	f := query.Filters()
	p := query.Pagination()

	base := func() *gorm.DB {
		q := h.db.WithContext(ctx).
			Table("routes AS r").
			Joins("JOIN carriers AS c ON c.id = r.carrier_id").
			Joins("JOIN vehicles AS v ON v.id = r.vehicle_id").
			Where("r.active = ?", true)
		if f.State != nil {
			q = q.Where("r.state = ?", f.State.String())
		}
		if f.CarrierID != nil {
			q = q.Where("r.carrier_id = ?", f.CarrierID.Bytes())
		}
		if f.VehicleID != nil {
			q = q.Where("r.vehicle_id = ?", f.VehicleID.Bytes())
		}
		if f.StartedOn != nil {
			from, to := dayBounds(*f.StartedOn)
			q = q.Where("r.started_at >= ? AND r.started_at < ?", from, to)
		}
		if f.FinishedOn != nil {
			from, to := dayBounds(*f.FinishedOn)
			q = q.Where("r.finished_at >= ? AND r.finished_at < ?", from, to)
		}
		if f.Search != "" {
			pattern := likePattern(f.Search)
			q = q.Where(
				"r.origin ILIKE @p OR r.destination ILIKE @p OR c.name ILIKE @p OR c.license_id ILIKE @p OR v.plate ILIKE @p",
				map[string]any{"p": pattern},
			)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ListRoutesQueryResponse{}, errs.Internal(err)
	}

	var rows []routeRow
	err := base().
		Select(`r.id, r.origin, r.destination, r.state, r.started_at, r.finished_at, r.created_at,
			c.id AS carrier_id, c.name AS carrier_name, c.license_id,
			v.id AS vehicle_id, v.plate AS vehicle_plate`).
		Order("r.created_at DESC, r.id").
		Limit(p.Size()).
		Offset(p.Offset()).
		Scan(&rows).Error
	if err != nil {
		return ListRoutesQueryResponse{}, errs.Internal(err)
	}

	items := make([]RouteListItem, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return ListRoutesQueryResponse{}, errs.Internal(err)
		}
		carrierID, err := kernel.UUIDFromBytes(row.CarrierID[:])
		if err != nil {
			return ListRoutesQueryResponse{}, errs.Internal(err)
		}
		vehicleID, err := kernel.UUIDFromBytes(row.VehicleID[:])
		if err != nil {
			return ListRoutesQueryResponse{}, errs.Internal(err)
		}
		items = append(items, RouteListItem{
			ID:           id,
			Origin:       row.Origin,
			Destination:  row.Destination,
			State:        row.State,
			StartedAt:    row.StartedAt,
			FinishedAt:   row.FinishedAt,
			CreatedAt:    row.CreatedAt,
			CarrierID:    carrierID,
			CarrierName:  row.CarrierName,
			LicenseID:    row.LicenseID,
			VehicleID:    vehicleID,
			VehiclePlate: row.VehiclePlate,
		})
	}

	return ListRoutesQueryResponse{Items: items, PageInfo: p.info(total)}, nil
}
