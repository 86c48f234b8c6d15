// Package coherency is the read-through cache in front of the listing and
// history queries, together with the invalidation rules that keep it in step
// with the store.
//
// Keys:
//
//	<prefix>:search:<json params>   listings, dropped per prefix
//	routes:pending                  pending routes summary
//	history:<trackingCode>          status history, dropped per code
//
// Ordering after a write is commit, then Invalidate, then notify.
package coherency
