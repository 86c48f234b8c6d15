// Package errs provides the error taxonomy shared by every layer of the
// routing service.
//
// Errors fall into four classes, each identified by a sentinel:
//   - ErrValidation: malformed input (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError); nothing was written
//   - ErrObjectNotFound: a referenced route, shipment, vehicle or carrier is absent
//   - ErrConflict: the request clashes with current state (capacity exceeded,
//     illegal transition, vehicle or carrier already in transit, duplicate key)
//   - ErrInternal: storage or unexpected failure
//
// Each error type follows the same pattern: a struct with the error details,
// constructors with and without cause, Error() for formatting and Unwrap()
// returning the sentinel.
package errs
