package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/route"
	"logistics/internal/pkg/guard"
)

var ErrListRoutesQueryIsNotConstructed = errors.New(
	"ListRoutesQuery must be created via NewListRoutesQuery constructor",
)

// RouteFilters narrows a route listing. Nil and empty fields do not filter.
type RouteFilters struct {
	State     *route.State
	CarrierID *kernel.UUID
	VehicleID *kernel.UUID

	// StartedOn and FinishedOn match the whole UTC day of the given time.
	StartedOn  *time.Time
	FinishedOn *time.Time

	// Search matches origin, destination, carrier name, carrier license and
	// vehicle plate, case-insensitively.
	Search string
}

// ListRoutesQuery pages through active routes, newest first.
type ListRoutesQuery struct {
	pagination Pagination
	filters    RouteFilters
	guard      guard.ConstructorGuard
}

func NewListRoutesQuery(pagination Pagination, filters RouteFilters) (ListRoutesQuery, error) {
	if filters.State != nil {
		if err := filters.State.Validate(); err != nil {
			return ListRoutesQuery{}, err
		}
	}
	filters.Search = strings.TrimSpace(filters.Search)
	return ListRoutesQuery{
		pagination: pagination,
		filters:    filters,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListRoutesQuery) Validate() error {
	return q.guard.Validate(ErrListRoutesQueryIsNotConstructed)
}

func (q ListRoutesQuery) Pagination() Pagination { return q.pagination }
func (q ListRoutesQuery) Filters() RouteFilters  { return q.filters }

// cacheParams is the listing key payload. Field order is part of the key.
func (q ListRoutesQuery) cacheParams() any {
	return struct {
		State      string `json:"state,omitempty"`
		CarrierID  string `json:"carrierId,omitempty"`
		VehicleID  string `json:"vehicleId,omitempty"`
		StartedOn  string `json:"startedOn,omitempty"`
		FinishedOn string `json:"finishedOn,omitempty"`
		Search     string `json:"search,omitempty"`
		Page       int    `json:"page"`
		Size       int    `json:"size"`
	}{
		State:      optionalString(q.filters.State),
		CarrierID:  optionalString(q.filters.CarrierID),
		VehicleID:  optionalString(q.filters.VehicleID),
		StartedOn:  optionalDay(q.filters.StartedOn),
		FinishedOn: optionalDay(q.filters.FinishedOn),
		Search:     strings.ToLower(q.filters.Search),
		Page:       q.pagination.Page(),
		Size:       q.pagination.Size(),
	}
}

// RouteListItem is one row of a route listing.
type RouteListItem struct {
	ID           kernel.UUID `json:"id"`
	Origin       string      `json:"origin"`
	Destination  string      `json:"destination"`
	State        string      `json:"state"`
	StartedAt    *time.Time  `json:"startedAt,omitempty"`
	FinishedAt   *time.Time  `json:"finishedAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	CarrierID    kernel.UUID `json:"carrierId"`
	CarrierName  string      `json:"carrierName"`
	LicenseID    string      `json:"licenseId"`
	VehicleID    kernel.UUID `json:"vehicleId"`
	VehiclePlate string      `json:"vehiclePlate"`
}

type ListRoutesQueryResponse struct {
	Items []RouteListItem `json:"items"`
	PageInfo
}
