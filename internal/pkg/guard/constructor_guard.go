// Package guard provides ConstructorGuard, a marker embedded in commands,
// queries and value objects to detect zero-value instances that bypassed
// their constructor.
package guard

import "errors"

// ErrNotConstructed is returned by Validate when no specific error is given.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard is false in its zero value and true once produced by
// NewConstructorGuard.
type ConstructorGuard struct {
	constructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns validationError (or ErrNotConstructed when it is nil) for a
// zero-value guard and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.constructed {
		return nil
	}
	if validationError == nil {
		return ErrNotConstructed
	}
	return validationError
}
