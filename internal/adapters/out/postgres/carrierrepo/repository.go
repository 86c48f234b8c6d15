package carrierrepo

import (
	"context"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/carrier"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCarrierRepository implements ports.CarrierRepository using GORM.
type GormCarrierRepository struct {
	db *gorm.DB
}

func NewGormCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// Add inserts a carrier. A license that is already registered is a Conflict.
func (r *GormCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "carrier "+aggregate.LicenseID(), "license is already registered")
	}
	return nil
}

// Update writes the mutable columns of an existing carrier.
func (r *GormCarrierRepository) Update(ctx context.Context, aggregate *carrier.Carrier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CarrierDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"name":       aggregate.Name(),
			"in_transit": aggregate.InTransit(),
			"active":     aggregate.IsActive(),
		})
	if result.Error != nil {
		return errs.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("carrier", aggregate.ID().String())
	}
	return nil
}

// Get loads an active carrier.
func (r *GormCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads an active carrier and locks its row until the
// transaction ends.
func (r *GormCarrierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCarrierRepository) get(db *gorm.DB, id kernel.UUID) (*carrier.Carrier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierDTO
	if err := db.Where("id = ? AND active = ?", id.Bytes(), true).First(&dto).Error; err != nil {
		return nil, pgerr.NotFound(err, "carrier", id.String())
	}
	return toDomain(dto)
}
