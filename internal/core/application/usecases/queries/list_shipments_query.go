package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ShipmentFilters narrows a shipment listing. Nil and empty fields do not
// filter.
type ShipmentFilters struct {
	// Status matches the shipment's current status, the label of its most
	// recent history event.
	Status *shipment.Status

	// CarrierID matches shipments on routes driven by the carrier.
	CarrierID *kernel.UUID

	CreatedFrom *time.Time
	CreatedTo   *time.Time

	// Search matches address, product type, tracking code and the origin or
	// destination of the shipment's route.
	Search string
}

// ListShipmentsQuery pages through active shipments, newest first.
type ListShipmentsQuery struct {
	pagination Pagination
	filters    ShipmentFilters
	guard      guard.ConstructorGuard
}

func NewListShipmentsQuery(pagination Pagination, filters ShipmentFilters) (ListShipmentsQuery, error) {
	if filters.Status != nil {
		if err := filters.Status.Validate(); err != nil {
			return ListShipmentsQuery{}, err
		}
	}
	if filters.CreatedFrom != nil && filters.CreatedTo != nil && filters.CreatedTo.Before(*filters.CreatedFrom) {
		return ListShipmentsQuery{}, errs.NewValueIsInvalidError("createdTo is before createdFrom")
	}
	filters.Search = strings.TrimSpace(filters.Search)
	return ListShipmentsQuery{
		pagination: pagination,
		filters:    filters,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Pagination() Pagination   { return q.pagination }
func (q ListShipmentsQuery) Filters() ShipmentFilters { return q.filters }

func (q ListShipmentsQuery) cacheParams() any {
	var from, to string
	if q.filters.CreatedFrom != nil {
		from = q.filters.CreatedFrom.UTC().Format(time.RFC3339)
	}
	if q.filters.CreatedTo != nil {
		to = q.filters.CreatedTo.UTC().Format(time.RFC3339)
	}
	return struct {
		Status      string `json:"status,omitempty"`
		CarrierID   string `json:"carrierId,omitempty"`
		CreatedFrom string `json:"createdFrom,omitempty"`
		CreatedTo   string `json:"createdTo,omitempty"`
		Search      string `json:"search,omitempty"`
		Page        int    `json:"page"`
		Size        int    `json:"size"`
	}{
		Status:      optionalString(q.filters.Status),
		CarrierID:   optionalString(q.filters.CarrierID),
		CreatedFrom: from,
		CreatedTo:   to,
		Search:      strings.ToLower(q.filters.Search),
		Page:        q.pagination.Page(),
		Size:        q.pagination.Size(),
	}
}

// ShipmentListItem is one row of a shipment listing.
type ShipmentListItem struct {
	ID           kernel.UUID  `json:"id"`
	TrackingCode string       `json:"trackingCode"`
	Address      string       `json:"address"`
	ProductType  string       `json:"productType"`
	Height       float64      `json:"height"`
	Width        float64      `json:"width"`
	Length       float64      `json:"length"`
	Weight       float64      `json:"weight"`
	Status       string       `json:"status"`
	StatusAt     *time.Time   `json:"statusAt,omitempty"`
	RouteID      *kernel.UUID `json:"routeId,omitempty"`
	Origin       string       `json:"origin,omitempty"`
	Destination  string       `json:"destination,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type ListShipmentsQueryResponse struct {
	Items []ShipmentListItem `json:"items"`
	PageInfo
}
