// Package route provides the Route aggregate and its State machine.
//
// A route is created Pending, accepts shipments only while Pending, and then
// moves forward one step at a time:
//
//	r, _ := route.NewRoute(id, carrierID, vehicleID, "Bogota", "Medellin", now)
//	_ = r.TransitionTo(route.InTransit, now)    // stamps StartedAt
//	_ = r.TransitionTo(route.Completed, later)  // stamps FinishedAt
//
// Side effects on the vehicle, carrier and shipments are coordinated by the
// RouteLifecycle domain service, not by the aggregate itself.
package route
