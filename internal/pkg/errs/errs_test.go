package errs_test

import (
	"errors"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("routeId", "123")

		assert.Equal(t, "routeId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("routeId", "123", cause)

		assert.Equal(t,
			"object not found: param is: routeId, ID is: 123 (cause: connection reset)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValidationErrors(t *testing.T) {
	t.Run("value is invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("origin", errors.New("too short"))

		assert.Equal(t, "value is invalid: origin (cause: too short)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("value is out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("size", 150, 1, 100)

		assert.Equal(t, "value is invalid: 150 is size, min value is 1, max value is 100", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("out of range message is single line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("address", "line\nbreak", 3, 255)

		assert.Contains(t, err.Error(), "line break")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("value is required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("plate")

		assert.Equal(t, "value is required: plate", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("route", "already in transit")

	assert.Equal(t, "conflict: route: already in transit", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.NotErrorIs(t, err, errs.ErrValidation)

	wrapped := errs.NewConflictErrorWithCause("plate", "duplicate", errors.New("23505"))
	assert.Equal(t, "conflict: plate: duplicate (cause: 23505)", wrapped.Error())
}

func TestInternal(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, errs.Internal(nil))
	})

	t.Run("classified errors pass through", func(t *testing.T) {
		conflict := errs.NewConflictError("route", "busy")
		notFound := errs.NewObjectNotFoundError("vehicle", "1")
		required := errs.NewValueIsRequiredError("name")

		assert.Same(t, conflict, errs.Internal(conflict))
		assert.Same(t, notFound, errs.Internal(notFound))
		assert.Same(t, required, errs.Internal(required))
	})

	t.Run("unclassified errors become internal", func(t *testing.T) {
		err := errs.Internal(errors.New("deadlock detected"))

		require.ErrorIs(t, err, errs.ErrInternal)
		assert.Equal(t, "internal error (cause: deadlock detected)", err.Error())
	})
}
