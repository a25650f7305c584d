package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("missing url")
	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "missing url", err.Message)
	assert.Zero(t, err.StatusCode)
	assert.Equal(t, "validation: missing url", err.Error())
}

func TestNetworkError_CarriesStatus(t *testing.T) {
	err := NetworkError("HTTP 500", 500)
	assert.Equal(t, TypeNetwork, err.Type)
	assert.Equal(t, 500, err.StatusCode)
	assert.Equal(t, "HTTP 500", err.UserMessage())
}

func TestTransportError_NoStatus(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := TransportError(cause)

	assert.Equal(t, TypeNetwork, err.Type)
	assert.Zero(t, err.StatusCode)
	assert.Equal(t, "connection refused", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := UnknownError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}

func TestAsError_PassesThroughStructured(t *testing.T) {
	original := AuthError("invalid credentials")
	wrapped := fmt.Errorf("flow failed: %w", original)

	got := AsError(wrapped)
	assert.Same(t, original, got)
}

func TestAsError_WrapsPlainError(t *testing.T) {
	got := AsError(stderrors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, TypeUnknown, got.Type)
}

func TestAsError_Nil(t *testing.T) {
	assert.Nil(t, AsError(nil))
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ValidationError("missing url"))

	assert.True(t, IsType(err, TypeValidation))
	assert.False(t, IsType(err, TypeNetwork))
	assert.False(t, IsType(stderrors.New("plain"), TypeValidation))
}
