package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetPendingRoutesQueryIsNotConstructed = errors.New(
	"GetPendingRoutesQuery must be created via NewGetPendingRoutesQuery constructor",
)

// GetPendingRoutesQuery lists the active routes still open for shipments.
type GetPendingRoutesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingRoutesQuery() GetPendingRoutesQuery {
	return GetPendingRoutesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingRoutesQueryIsNotConstructed)
}

type PendingRoute struct {
	ID          kernel.UUID `json:"id"`
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
}
