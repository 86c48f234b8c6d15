package carrier

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	MinLicenseIDLength = 5
	MaxLicenseIDLength = 20
	MinNameLength      = 3
	MaxNameLength      = 100
)

// ErrCarrierIsNotConstructed is returned when using a zero-value Carrier.
var ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

// Carrier is the driver operating a route. Like a vehicle, a carrier is in
// transit on at most one active route at a time.
type Carrier struct {
	id        kernel.UUID
	licenseID string
	name      string
	inTransit bool
	active    bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewCarrier registers an active carrier that is not driving.
func NewCarrier(id kernel.UUID, licenseID, name string, now time.Time) (*Carrier, error) {
	c := &Carrier{
		active:    true,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setLicenseID(licenseID),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCarrier rebuilds a carrier from persisted state.
func RestoreCarrier(
	id kernel.UUID,
	licenseID, name string,
	inTransit, active bool,
	createdAt time.Time,
) (*Carrier, error) {
	c, err := NewCarrier(id, licenseID, name, createdAt)
	if err != nil {
		return nil, err
	}
	c.inTransit = inTransit
	c.active = active
	return c, nil
}

func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

func (c *Carrier) ID() kernel.UUID      { return c.id }
func (c *Carrier) LicenseID() string    { return c.licenseID }
func (c *Carrier) Name() string         { return c.name }
func (c *Carrier) InTransit() bool      { return c.inTransit }
func (c *Carrier) IsActive() bool       { return c.active }
func (c *Carrier) CreatedAt() time.Time { return c.createdAt }

// CanDepart reports whether the carrier is free to start a route.
func (c *Carrier) CanDepart() error {
	if !c.active {
		return errs.NewConflictError("carrier "+c.id.String(), "carrier is retired")
	}
	if c.inTransit {
		return errs.NewConflictError("carrier "+c.id.String(), "carrier is already in transit")
	}
	return nil
}

func (c *Carrier) Depart() error {
	if err := c.CanDepart(); err != nil {
		return err
	}
	c.inTransit = true
	return nil
}

func (c *Carrier) Release() {
	c.inTransit = false
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setLicenseID(licenseID string) error {
	licenseID = strings.TrimSpace(licenseID)
	if licenseID == "" {
		return errs.NewValueIsRequiredError("licenseId")
	}
	if l := len(licenseID); l < MinLicenseIDLength || l > MaxLicenseIDLength {
		return errs.NewValueIsOutOfRangeError("licenseId length", l, MinLicenseIDLength, MaxLicenseIDLength)
	}
	c.licenseID = licenseID
	return nil
}

func (c *Carrier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if l := len(name); l < MinNameLength || l > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", l, MinNameLength, MaxNameLength)
	}
	c.name = name
	return nil
}
