package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_KindThroughWrapping(t *testing.T) {
	base := &Error{Kind: KindColumnMismatch, Message: "column not found", Column: "amount", Type: DataTypeNumber}
	wrapped := fmt.Errorf("update failed: %w", base)

	assert.True(t, IsKind(wrapped, KindColumnMismatch))
	assert.False(t, IsKind(wrapped, KindValidation))

	var e *Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "amount", e.Column)
	assert.Equal(t, DataTypeNumber, e.Type)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(KindDataAccess, cause, "failed to read table %s", "orders")

	assert.Equal(t, "failed to read table orders: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindDataAccess, KindOf(err))
	assert.Equal(t, ErrorKind(0), KindOf(cause))
}
