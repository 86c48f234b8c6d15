// Package notifications pushes shipment status snapshots to subscribers once
// a route transition has committed.
package notifications
