package ue

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := NewInvalidParameter("window_step", "window step must be positive, got %v", 0)
	assert.Equal(t, "INVALID_PARAMETER: window step must be positive, got 0 (field=window_step)", err.Error())

	bare := &Error{Code: ErrCodeUnitMismatch, Message: "bad unit"}
	assert.Equal(t, "UNIT_MISMATCH: bad unit", bare.Error())
}

func TestErrorHelpersUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("normalize: %w", NewUnitMismatch("time_unit", "fortnight"))

	assert.True(t, IsUnitMismatch(wrapped))
	assert.True(t, IsInvalidParameter(wrapped))
	assert.Equal(t, ErrCodeUnitMismatch, CodeOf(wrapped))

	plain := errors.New("boom")
	assert.False(t, IsInvalidParameter(plain))
	assert.False(t, IsUnitMismatch(plain))
	assert.Equal(t, ErrorCode(""), CodeOf(plain))
	assert.False(t, IsInvalidParameter(nil))
}
