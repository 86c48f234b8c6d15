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

type ListVehiclesQueryHandler struct {
	db    *gorm.DB
	cache *coherency.Layer
}

func NewListVehiclesQueryHandler(db *gorm.DB, cache *coherency.Layer) ListVehiclesQueryHandler {
	return ListVehiclesQueryHandler{db: db, cache: cache}
}

func (h ListVehiclesQueryHandler) Handle(ctx context.Context, query ListVehiclesQuery) (ListVehiclesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListVehiclesQueryResponse{}, err
	}

	key, err := coherency.ListingKey(coherency.Vehicles, query.cacheParams())
	if err != nil {
		return ListVehiclesQueryResponse{}, errs.Internal(err)
	}
	return coherency.ReadThrough(ctx, h.cache, key, func(ctx context.Context) (ListVehiclesQueryResponse, error) {
		return h.load(ctx, query)
	})
}

func (h ListVehiclesQueryHandler) load(ctx context.Context, query ListVehiclesQuery) (ListVehiclesQueryResponse, error) {
	base := func() *gorm.DB {
		q := h.db.WithContext(ctx).Table("vehicles").Where("active = ?", true)
		if query.inTransit != nil {
			q = q.Where("in_transit = ?", *query.inTransit)
		}
		if query.search != "" {
			q = q.Where("plate ILIKE ?", likePattern(query.search))
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ListVehiclesQueryResponse{}, errs.Internal(err)
	}

	var rows []struct {
		ID        uuid.UUID
		Plate     string
		MaxWeight float64
		MaxVolume float64
		InTransit bool
		CreatedAt time.Time
	}
	p := query.pagination
	err := base().
		Select("id, plate, max_weight, max_volume, in_transit, created_at").
		Order("plate").
		Limit(p.Size()).
		Offset(p.Offset()).
		Scan(&rows).Error
	if err != nil {
		return ListVehiclesQueryResponse{}, errs.Internal(err)
	}

	items := make([]VehicleListItem, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return ListVehiclesQueryResponse{}, errs.Internal(err)
		}
		items = append(items, VehicleListItem{
			ID:        id,
			Plate:     row.Plate,
			MaxWeight: row.MaxWeight,
			MaxVolume: row.MaxVolume,
			InTransit: row.InTransit,
			CreatedAt: row.CreatedAt,
		})
	}
	return ListVehiclesQueryResponse{Items: items, PageInfo: p.info(total)}, nil
}
