package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("bookID", "42")

		assert.Equal(t, "bookID", err.ParamName)
		assert.Equal(t, "42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := errs.NewObjectNotFoundErrorWithCause("bookID", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: bookID, ID is: 42 (cause: connection refused)",
			err.Error())
	})

	t.Run("numeric identifiers", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderID", int64(456))
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("phone")

		assert.Equal(t, "phone", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: phone", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("phone", errors.New("must start with 0"))
		assert.Equal(t, "value is invalid: phone (cause: must start with 0)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 120)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is quantity, min value is 1, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", -5, 1, 10, errors.New("not enough stock"))
		assert.Equal(t,
			"value is invalid: -5 is quantity, min value is 1, max value is 10 (cause: not enough stock)",
			err.Error())
	})

	t.Run("values are rendered on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("title", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("address")
	assert.Equal(t, "value is required: address", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	err = errs.NewValueIsRequiredErrorWithCause("address", errors.New("blank"))
	assert.Equal(t, "value is required: address (cause: blank)", err.Error())
}

func TestSentinelMessages(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load book: %w", errs.NewObjectNotFoundError("bookID", 7))
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)

	joined := errors.Join(
		errs.NewValueIsRequiredError("customerName"),
		errs.NewValueIsOutOfRangeError("quantity", 0, 1, 5),
	)
	require.ErrorIs(t, joined, errs.ErrValueIsRequired)
	require.ErrorIs(t, joined, errs.ErrValueIsOutOfRange)
	require.NotErrorIs(t, joined, errs.ErrObjectNotFound)

	var rangeErr *errs.ValueIsOutOfRangeError
	require.ErrorAs(t, joined, &rangeErr)
	assert.Equal(t, 5, rangeErr.Max)
}
