package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := ConfigError("missing secret")
	assert.Contains(t, err.Error(), "config")
	assert.Contains(t, err.Error(), "missing secret")

	wrapped := InternalError("startup failed", errors.New("boom"))
	assert.Contains(t, wrapped.Error(), "boom")
	assert.Equal(t, "boom", errors.Unwrap(wrapped).Error())
}

func TestAppError_WithContext(t *testing.T) {
	err := ValidationError("bad descriptor").WithContext("provider", "github")

	assert.Equal(t, "github", err.Context["provider"])
	assert.Contains(t, err.Error(), "provider=github")
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(AuthError("denied"), ErrTypeAuth))
	assert.False(t, IsType(AuthError("denied"), ErrTypeConfig))
	assert.False(t, IsType(errors.New("plain"), ErrTypeAuth))
	assert.False(t, IsType(nil, ErrTypeAuth))
}

func TestGetType(t *testing.T) {
	assert.Equal(t, ErrTypeNotFound, GetType(NotFoundError("route")))
	assert.Equal(t, ErrTypeInternal, GetType(errors.New("plain")))
	assert.Equal(t, ErrorType(""), GetType(nil))
}
