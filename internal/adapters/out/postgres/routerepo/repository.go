package routerepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// Add inserts a route. Unknown carrier or vehicle IDs surface as NotFound
// through the foreign keys.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "route "+aggregate.ID().String(), "route already exists")
	}
	return nil
}

// Update writes the lifecycle columns of an existing route.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RouteDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"state":       dto.State,
			"started_at":  dto.StartedAt,
			"finished_at": dto.FinishedAt,
			"active":      dto.Active,
		})
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route", aggregate.ID().String())
	}
	return nil
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the route row until the transaction ends. Every writer
// that touches a route's shipments takes this lock first.
func (r *GormRouteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// Find returns the active routes matching lookup, oldest first.
func (r *GormRouteRepository) Find(ctx context.Context, lookup ports.RouteLookup) ([]*route.Route, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)

	if id, ok := lookup.RouteID(); ok {
		q = q.Where("id = ?", id.Bytes())
	} else if id, ok := lookup.VehicleID(); ok {
		q = q.Where("vehicle_id = ? AND state = ?", id.Bytes(), route.InTransit.String())
	} else if id, ok := lookup.CarrierID(); ok {
		q = q.Where("carrier_id = ? AND state = ?", id.Bytes(), route.InTransit.String())
	} else {
		return nil, errs.NewValueIsInvalidError("route lookup")
	}

	var dtos []RouteDTO
	if err := q.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, errs.Internal(err)
	}

	routes := make([]*route.Route, 0, len(dtos))
	for _, dto := range dtos {
		rt, err := toDomain(dto)
		if err != nil {
			return nil, errs.Internal(err)
		}
		routes = append(routes, rt)
	}
	return routes, nil
}

func (r *GormRouteRepository) get(db *gorm.DB, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := db.Where("id = ? AND active = ?", id.Bytes(), true).First(&dto).Error; err != nil {
		return nil, pgerr.NotFound(err, "route", id.String())
	}
	return toDomain(dto)
}
