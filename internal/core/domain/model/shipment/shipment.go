package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinTextLength = 3
	MaxTextLength = 255
)

var (
	// ErrShipmentIsNotConstructed is returned when using a zero-value Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is a package registered for delivery. It is identified
// externally by its tracking code and, once planned, belongs to exactly one
// route.
//
// Shipment follows these invariants:
//   - trackingCode is unique across shipments (enforced by storage)
//   - weight is positive and every side of dimensions is positive
//   - address and productType are 3 to 255 characters
//   - routeID, once set, is never moved to a different route
type Shipment struct {
	// id is the internal identifier
	id kernel.UUID

	// trackingCode is the public identifier customers query with
	trackingCode kernel.TrackingCode

	// address is the delivery destination
	address string

	// dimensions are height, width and length in the same unit as the
	// vehicle's maxVolume
	dimensions kernel.Dimensions

	// weight is in the same unit as the vehicle's maxWeight
	weight float64

	productType string

	// routeID is nil until the shipment is assigned
	routeID *kernel.UUID

	active    bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewShipment registers an unassigned shipment.
//
// Parameters:
//   - id: internal identifier
//   - code: tracking code, generated by the caller so collisions can be
//     retried against storage
//   - address, productType: free text, 3 to 255 characters
//   - dimensions: validated package sides
//   - weight: must be positive
//
// The Waiting event that starts the history is produced by InitialEvent.
func NewShipment(
	id kernel.UUID,
	code kernel.TrackingCode,
	address string,
	dimensions kernel.Dimensions,
	weight float64,
	productType string,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		active:    true,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingCode(code),
		s.setAddress(address),
		s.setDimensions(dimensions),
		s.setWeight(weight),
		s.setProductType(productType),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment rebuilds a shipment from persisted state.
func RestoreShipment(
	id kernel.UUID,
	code kernel.TrackingCode,
	address string,
	dimensions kernel.Dimensions,
	weight float64,
	productType string,
	routeID *kernel.UUID,
	active bool,
	createdAt time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, code, address, dimensions, weight, productType, createdAt)
	if err != nil {
		return nil, err
	}
	if routeID != nil {
		if err := routeID.Validate(); err != nil {
			return nil, err
		}
		rid := *routeID
		s.routeID = &rid
	}
	s.active = active
	return s, nil
}

// Validate ensures the Shipment was created through NewShipment or
// RestoreShipment.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) TrackingCode() kernel.TrackingCode {
	return s.trackingCode
}

func (s *Shipment) Address() string {
	return s.address
}

func (s *Shipment) Dimensions() kernel.Dimensions {
	return s.dimensions
}

// Volume is height x width x length.
func (s *Shipment) Volume() float64 {
	return s.dimensions.Volume()
}

func (s *Shipment) Weight() float64 {
	return s.weight
}

func (s *Shipment) ProductType() string {
	return s.productType
}

// RouteID returns the assigned route, or nil while unassigned.
func (s *Shipment) RouteID() *kernel.UUID {
	return s.routeID
}

func (s *Shipment) IsActive() bool {
	return s.active
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// IsAssignedTo reports whether the shipment already belongs to routeID.
func (s *Shipment) IsAssignedTo(routeID kernel.UUID) bool {
	return s.routeID != nil && s.routeID.IsEqual(routeID)
}

// InitialEvent is the Waiting entry recorded when the shipment is registered.
func (s *Shipment) InitialEvent() (*StatusEvent, error) {
	return NewStatusEvent(s.id, Waiting, s.createdAt)
}

// AssignTo attaches the shipment to routeID.
//
// Returns a conflict error if the shipment is inactive, already on routeID,
// or on any other route. Reassignment is not supported.
func (s *Shipment) AssignTo(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if !s.active {
		return errs.NewConflictError("shipment "+s.trackingCode.String(), "shipment is inactive")
	}
	if s.IsAssignedTo(routeID) {
		return errs.NewConflictError("shipment "+s.trackingCode.String(), "shipment is already assigned to this route")
	}
	if s.routeID != nil {
		return errs.NewConflictError("shipment "+s.trackingCode.String(), "shipment is assigned to another route")
	}

	rid := routeID
	s.routeID = &rid
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	s.trackingCode = code
	return nil
}

func (s *Shipment) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if err := validateText("address", address); err != nil {
		return err
	}
	s.address = address
	return nil
}

func (s *Shipment) setDimensions(dimensions kernel.Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	s.dimensions = dimensions
	return nil
}

func (s *Shipment) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setProductType(productType string) error {
	productType = strings.TrimSpace(productType)
	if err := validateText("productType", productType); err != nil {
		return err
	}
	s.productType = productType
	return nil
}

func validateText(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if l := len(value); l < MinTextLength || l > MaxTextLength {
		return errs.NewValueIsOutOfRangeError(name+" length", l, MinTextLength, MaxTextLength)
	}
	return nil
}
