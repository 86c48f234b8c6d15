package queries

import (
	"context"

	"logistics/internal/core/application/coherency"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingRoutesQueryHandler serves the pending routes summary cached at
// coherency.PendingRoutesKey.
type GetPendingRoutesQueryHandler struct {
	db    *gorm.DB
	cache *coherency.Layer
}

func NewGetPendingRoutesQueryHandler(db *gorm.DB, cache *coherency.Layer) GetPendingRoutesQueryHandler {
	return GetPendingRoutesQueryHandler{db: db, cache: cache}
}

func (h GetPendingRoutesQueryHandler) Handle(ctx context.Context, query GetPendingRoutesQuery) ([]PendingRoute, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return coherency.ReadThrough(ctx, h.cache, coherency.PendingRoutesKey, h.load)
}

// Refresh reloads the summary from the store and overwrites the cached copy.
// A route write that invalidates the cache during the reload wins; the
// reloaded summary is then left uncached.
func (h GetPendingRoutesQueryHandler) Refresh(ctx context.Context) (int, error) {
	epoch := h.cache.Epoch()
	routes, err := h.load(ctx)
	if err != nil {
		return 0, err
	}
	h.cache.StoreIfCurrent(ctx, coherency.PendingRoutesKey, routes, epoch)
	return len(routes), nil
}

func (h GetPendingRoutesQueryHandler) load(ctx context.Context) ([]PendingRoute, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, origin, destination
		FROM routes
		WHERE active AND state = ?
		ORDER BY created_at, id
	`, route.Pending.String()).Rows()
	if err != nil {
		return nil, errs.Internal(err)
	}
	defer rows.Close()

	pending := make([]PendingRoute, 0)
	for rows.Next() {
		var (
			id uuid.UUID
			pr PendingRoute
		)
		if err := rows.Scan(&id, &pr.Origin, &pr.Destination); err != nil {
			return nil, errs.Internal(err)
		}
		if pr.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, errs.Internal(err)
		}
		pending = append(pending, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err)
	}
	return pending, nil
}
