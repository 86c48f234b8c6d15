package queries

import (
	"context"

	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetStatusSnapshotsQueryHandler struct {
	db *gorm.DB
}

func NewGetStatusSnapshotsQueryHandler(db *gorm.DB) GetStatusSnapshotsQueryHandler {
	return GetStatusSnapshotsQueryHandler{db: db}
}

// Handle returns one snapshot per active shipment on the route that has any
// history, ordered by tracking code.
func (h GetStatusSnapshotsQueryHandler) Handle(ctx context.Context, query GetStatusSnapshotsQuery) ([]StatusSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT s.tracking_code, cur.status, cur.occurred_at, s.address
		FROM shipments AS s
		`+currentStatusJoin+`
		WHERE s.route_id = ? AND s.active AND cur.status IS NOT NULL
		ORDER BY s.tracking_code
	`, query.RouteID().Bytes()).Rows()
	if err != nil {
		return nil, errs.Internal(err)
	}
	defer rows.Close()

	snapshots := make([]StatusSnapshot, 0)
	for rows.Next() {
		var s StatusSnapshot
		if err := rows.Scan(&s.TrackingCode, &s.State, &s.Timestamp, &s.Address); err != nil {
			return nil, errs.Internal(err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err)
	}
	return snapshots, nil
}
