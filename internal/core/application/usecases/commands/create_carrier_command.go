package commands

import (
	"errors"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrCreateCarrierCommandIsNotConstructed = errors.New(
	"CreateCarrierCommand must be created via NewCreateCarrierCommand constructor",
)

// CreateCarrierCommand registers a new carrier. Field bounds are enforced by
// the Carrier aggregate; the command only rejects missing values.
type CreateCarrierCommand struct { //nolint:recvcheck //using for validation
	licenseID string
	name      string

	guard guard.ConstructorGuard
}

func NewCreateCarrierCommand(licenseID, name string) (CreateCarrierCommand, error) {
	command := CreateCarrierCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		command.setLicenseID(licenseID),
		command.setName(name),
	); err != nil {
		return CreateCarrierCommand{}, err
	}

	return command, nil
}

func (c CreateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierCommandIsNotConstructed)
}

func (c CreateCarrierCommand) LicenseID() string { return c.licenseID }
func (c CreateCarrierCommand) Name() string      { return c.name }

func (c *CreateCarrierCommand) setLicenseID(licenseID string) error {
	if licenseID == "" {
		return errs.NewValueIsRequiredError("licenseId")
	}
	c.licenseID = licenseID
	return nil
}

func (c *CreateCarrierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}
