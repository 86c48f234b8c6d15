package queries

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrListCarriersQueryIsNotConstructed = errors.New(
	"ListCarriersQuery must be created via NewListCarriersQuery constructor",
)

// ListCarriersQuery pages through active carriers ordered by name.
type ListCarriersQuery struct {
	pagination Pagination
	inTransit  *bool
	search     string
	guard      guard.ConstructorGuard
}

// NewListCarriersQuery lists carriers, optionally filtered by their
// inTransit flag and by a search over name and license.
func NewListCarriersQuery(pagination Pagination, inTransit *bool, search string) ListCarriersQuery {
	return ListCarriersQuery{
		pagination: pagination,
		inTransit:  inTransit,
		search:     strings.TrimSpace(search),
		guard:      guard.NewConstructorGuard(),
	}
}

func (q ListCarriersQuery) Validate() error {
	return q.guard.Validate(ErrListCarriersQueryIsNotConstructed)
}

func (q ListCarriersQuery) cacheParams() any {
	return struct {
		InTransit *bool  `json:"inTransit,omitempty"`
		Search    string `json:"search,omitempty"`
		Page      int    `json:"page"`
		Size      int    `json:"size"`
	}{q.inTransit, strings.ToLower(q.search), q.pagination.Page(), q.pagination.Size()}
}

type CarrierListItem struct {
	ID        kernel.UUID `json:"id"`
	LicenseID string      `json:"licenseId"`
	Name      string      `json:"name"`
	InTransit bool        `json:"inTransit"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ListCarriersQueryResponse struct {
	Items []CarrierListItem `json:"items"`
	PageInfo
}
