package route

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// State is the lifecycle state of a route.
//
// State transitions:
//
//	Pending ──> InTransit ──> Completed
//
// Transitions are forward-only and single-step: a route cannot skip
// InTransit, go back, or be re-entered into the state it already has.
type State int

const (
	// Unknown catches uninitialized State values.
	Unknown State = iota

	// Pending is the initial state. Shipments can only be assigned while a
	// route is Pending.
	Pending

	// InTransit means the vehicle and carrier have departed.
	InTransit

	// Completed is terminal.
	Completed
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		InTransit: "InTransit",
		Completed: "Completed",
	}
}

// ParseState accepts the persisted name of a state as well as the forms
// clients tend to send ("pending", "in_transit", "in transit", "IN-TRANSIT").
func ParseState(s string) (State, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("_", "", "-", "", " ", "").Replace(normalized)

	switch normalized {
	case "pending":
		return Pending, nil
	case "intransit":
		return InTransit, nil
	case "completed":
		return Completed, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a route state", s))
	}
}

// Validate rejects Unknown and values outside the enum.
func (s State) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid route state", s))
	}
	return nil
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the single state reachable from s. Completed has no successor.
func (s State) Next() (State, bool) {
	switch s { //nolint:exhaustive // Unknown and Completed have no successor
	case Pending:
		return InTransit, true
	case InTransit:
		return Completed, true
	default:
		return Unknown, false
	}
}

// IsFinal reports whether no transition leaves s.
func (s State) IsFinal() bool {
	return s == Completed
}

// ValidateTransition checks that target is the successor of s.
//
// Returns:
//   - a validation error if target is not a known state
//   - a conflict error if target equals s, skips a step or goes backwards
func (s State) ValidateTransition(target State) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s == target {
		return errs.NewConflictError("route state", "route is already "+s.String())
	}
	next, ok := s.Next()
	if !ok || next != target {
		return errs.NewConflictError("route state",
			fmt.Sprintf("cannot move from %s to %s", s, target))
	}
	return nil
}
