package ports

import (
	"logistics/internal/core/domain/model/kernel"
)

type shipmentLookupKind int

const (
	shipmentByID shipmentLookupKind = iota + 1
	shipmentByTrackingCode
)

// ShipmentLookup selects a single shipment. The set of lookups is closed:
// values can only be built with ShipmentByID and ShipmentByTrackingCode, so
// adapters resolve them with a switch instead of accepting column names.
type ShipmentLookup struct {
	kind shipmentLookupKind
	id   kernel.UUID
	code kernel.TrackingCode
}

func ShipmentByID(id kernel.UUID) ShipmentLookup {
	return ShipmentLookup{kind: shipmentByID, id: id}
}

func ShipmentByTrackingCode(code kernel.TrackingCode) ShipmentLookup {
	return ShipmentLookup{kind: shipmentByTrackingCode, code: code}
}

// ID returns the shipment ID and true for lookups built by ShipmentByID.
func (l ShipmentLookup) ID() (kernel.UUID, bool) {
	return l.id, l.kind == shipmentByID
}

// TrackingCode returns the code and true for lookups built by
// ShipmentByTrackingCode.
func (l ShipmentLookup) TrackingCode() (kernel.TrackingCode, bool) {
	return l.code, l.kind == shipmentByTrackingCode
}

func (l ShipmentLookup) String() string {
	switch l.kind {
	case shipmentByID:
		return "id=" + l.id.String()
	case shipmentByTrackingCode:
		return "trackingCode=" + l.code.String()
	}
	return "invalid shipment lookup"
}

type routeLookupKind int

const (
	routeByID routeLookupKind = iota + 1
	routesInTransitByVehicle
	routesInTransitByCarrier
)

// RouteLookup selects active routes. Like ShipmentLookup it is a closed set.
type RouteLookup struct {
	kind routeLookupKind
	id   kernel.UUID
}

func RouteByID(id kernel.UUID) RouteLookup {
	return RouteLookup{kind: routeByID, id: id}
}

// RoutesInTransitByVehicle matches active InTransit routes driven with the
// vehicle.
func RoutesInTransitByVehicle(vehicleID kernel.UUID) RouteLookup {
	return RouteLookup{kind: routesInTransitByVehicle, id: vehicleID}
}

// RoutesInTransitByCarrier matches active InTransit routes driven by the
// carrier.
func RoutesInTransitByCarrier(carrierID kernel.UUID) RouteLookup {
	return RouteLookup{kind: routesInTransitByCarrier, id: carrierID}
}

func (l RouteLookup) RouteID() (kernel.UUID, bool) {
	return l.id, l.kind == routeByID
}

func (l RouteLookup) VehicleID() (kernel.UUID, bool) {
	return l.id, l.kind == routesInTransitByVehicle
}

func (l RouteLookup) CarrierID() (kernel.UUID, bool) {
	return l.id, l.kind == routesInTransitByCarrier
}

func (l RouteLookup) String() string {
	switch l.kind {
	case routeByID:
		return "id=" + l.id.String()
	case routesInTransitByVehicle:
		return "inTransit vehicleId=" + l.id.String()
	case routesInTransitByCarrier:
		return "inTransit carrierId=" + l.id.String()
	}
	return "invalid route lookup"
}
