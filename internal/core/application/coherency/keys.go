package coherency

import (
	"encoding/json"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
)

// Prefix names the group of cached listings that belong to one entity type.
// Mutating an entity type drops every key under its prefix.
type Prefix string

const (
	Routes    Prefix = "routes"
	Shipments Prefix = "shipments"
	Vehicles  Prefix = "vehicles"
	Carriers  Prefix = "carriers"
)

// PendingRoutesKey caches the pending-routes summary. It lives under Routes
// so any route mutation drops it.
const PendingRoutesKey = string(Routes) + ":pending"

const historyPrefix = "history:"

// Key returns the namespace every key of p starts with.
func (p Prefix) Key() string {
	return string(p) + ":"
}

// ListingKey builds the key of a listing from its query parameters. params is
// encoded as JSON, so struct field order fixes the key layout.
func ListingKey(p Prefix, params any) (string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode listing key: %w", err)
	}
	return p.Key() + "search:" + string(raw), nil
}

// HistoryKey is the point key of one shipment's status history.
func HistoryKey(code kernel.TrackingCode) string {
	return historyPrefix + code.String()
}
