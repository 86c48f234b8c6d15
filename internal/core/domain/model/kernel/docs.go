// Package kernel holds value objects shared by every aggregate of the routing
// domain: identifiers, shipment dimensions and tracking codes.
package kernel
