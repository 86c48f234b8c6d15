// Package queries contains the read side: listings, the pending routes
// summary, shipment histories and the status snapshots pushed to
// subscribers.
//
// Query handlers read straight from the database with SQL; they never load
// aggregates. Listings and histories are served through the coherency layer,
// status snapshots are always read fresh.
package queries
