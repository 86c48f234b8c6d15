// Package shipment provides the Shipment aggregate, its customer-facing
// Status and the append-only StatusEvent history entries.
package shipment
