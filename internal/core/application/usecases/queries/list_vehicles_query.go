package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrListVehiclesQueryIsNotConstructed = errors.New(
	"ListVehiclesQuery must be created via NewListVehiclesQuery constructor",
)

// ListVehiclesQuery pages through active vehicles ordered by plate.
type ListVehiclesQuery struct {
	pagination Pagination
	inTransit  *bool
	search     string
	guard      guard.ConstructorGuard
}

// NewListVehiclesQuery lists vehicles, optionally only those whose inTransit
// flag equals inTransit and whose plate contains search.
func NewListVehiclesQuery(pagination Pagination, inTransit *bool, search string) ListVehiclesQuery {
	return ListVehiclesQuery{
		pagination: pagination,
		inTransit:  inTransit,
		search:     strings.TrimSpace(search),
		guard:      guard.NewConstructorGuard(),
	}
}

func (q ListVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrListVehiclesQueryIsNotConstructed)
}

func (q ListVehiclesQuery) cacheParams() any {
	return struct {
		InTransit *bool  `json:"inTransit,omitempty"`
		Search    string `json:"search,omitempty"`
		Page      int    `json:"page"`
		Size      int    `json:"size"`
	}{q.inTransit, strings.ToLower(q.search), q.pagination.Page(), q.pagination.Size()}
}

type VehicleListItem struct {
	ID        kernel.UUID `json:"id"`
	Plate     string      `json:"plate"`
	MaxWeight float64     `json:"maxWeight"`
	MaxVolume float64     `json:"maxVolume"`
	InTransit bool        `json:"inTransit"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ListVehiclesQueryResponse struct {
	Items []VehicleListItem `json:"items"`
	PageInfo
}
