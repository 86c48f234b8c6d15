package shipment

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the customer-facing lifecycle state of a shipment. It is derived
// from the state of the route carrying the shipment and recorded as a
// StatusEvent every time it changes.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Waiting is recorded when a shipment is registered and while its route
	// is still Pending.
	Waiting

	// InTransit mirrors a route that has departed.
	InTransit

	// Delivered mirrors a completed route.
	Delivered
)

func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown has no label
	return map[Status]string{
		Waiting:   "waiting",
		InTransit: "in transit",
		Delivered: "delivered",
	}
}

// StatusFromLabel parses the label stored in the status history.
func StatusFromLabel(label string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for s, l := range getStatusLabels() {
		if l == normalized {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", label))
}

func (s Status) Validate() error {
	if _, ok := getStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// Label is the lowercase human-readable name used in history and
// notifications.
func (s Status) Label() string {
	if l, ok := getStatusLabels()[s]; ok {
		return l
	}
	return "unknown"
}

func (s Status) String() string {
	return s.Label()
}
