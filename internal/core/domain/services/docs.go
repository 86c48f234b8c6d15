// Package services holds domain services that coordinate several aggregates:
//
//   - CapacityValidator: greedy volume and weight accounting when shipments
//     are assigned to a route
//   - RouteLifecycle: route state transitions cascaded to the vehicle, the
//     carrier and the shipments' status history
//   - ShipmentStatusFor: the route state to shipment status mapping
//
// Services are stateless and do no I/O; callers load and lock the aggregates
// and persist the result.
package services
