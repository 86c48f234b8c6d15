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

type ListCarriersQueryHandler struct {
	db    *gorm.DB
	cache *coherency.Layer
}

func NewListCarriersQueryHandler(db *gorm.DB, cache *coherency.Layer) ListCarriersQueryHandler {
	return ListCarriersQueryHandler{db: db, cache: cache}
}

func (h ListCarriersQueryHandler) Handle(ctx context.Context, query ListCarriersQuery) (ListCarriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListCarriersQueryResponse{}, err
	}

	key, err := coherency.ListingKey(coherency.Carriers, query.cacheParams())
	if err != nil {
		return ListCarriersQueryResponse{}, errs.Internal(err)
	}
	return coherency.ReadThrough(ctx, h.cache, key, func(ctx context.Context) (ListCarriersQueryResponse, error) {
		return h.load(ctx, query)
	})
}

func (h ListCarriersQueryHandler) load(ctx context.Context, query ListCarriersQuery) (ListCarriersQueryResponse, error) {
	base := func() *gorm.DB {
		q := h.db.WithContext(ctx).Table("carriers").Where("active = ?", true)
		if query.inTransit != nil {
			q = q.Where("in_transit = ?", *query.inTransit)
		}
		if query.search != "" {
			q = q.Where("name ILIKE @p OR license_id ILIKE @p", map[string]any{"p": likePattern(query.search)})
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ListCarriersQueryResponse{}, errs.Internal(err)
	}

	var rows []struct {
		ID        uuid.UUID
		LicenseID string
		Name      string
		InTransit bool
		CreatedAt time.Time
	}
	p := query.pagination
	err := base().
		Select("id, license_id, name, in_transit, created_at").
		Order("name, id").
		Limit(p.Size()).
		Offset(p.Offset()).
		Scan(&rows).Error
	if err != nil {
		return ListCarriersQueryResponse{}, errs.Internal(err)
	}

	items := make([]CarrierListItem, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return ListCarriersQueryResponse{}, errs.Internal(err)
		}
		items = append(items, CarrierListItem{
			ID:        id,
			LicenseID: row.LicenseID,
			Name:      row.Name,
			InTransit: row.InTransit,
			CreatedAt: row.CreatedAt,
		})
	}
	return ListCarriersQueryResponse{Items: items, PageInfo: p.info(total)}, nil
}
