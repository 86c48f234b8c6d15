package services

import (
	"fmt"

	"logistics/internal/core/domain/model/route"
	"logistics/internal/core/domain/model/shipment"
	"logistics/internal/pkg/errs"
)

// ShipmentStatusFor maps a route state to the status its shipments report.
//
//	Pending   -> waiting
//	InTransit -> in transit
//	Completed -> delivered
func ShipmentStatusFor(state route.State) (shipment.Status, error) {
	switch state {
	case route.Pending:
		return shipment.Waiting, nil
	case route.InTransit:
		return shipment.InTransit, nil
	case route.Completed:
		return shipment.Delivered, nil
	case route.Unknown:
	}
	return shipment.Unknown, errs.NewValueIsInvalidErrorWithCause("state",
		fmt.Errorf("%d has no shipment status", state))
}
