package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEntityNotFoundError(t *testing.T) {
	e := NewEntityNotFoundError("not found", nil)
	assert.Equal(t, ErrEntityNotFound, e.Code)
	assert.Equal(t, "not found", e.Message)
	assert.Nil(t, e.Inner)
}

func TestNewInternalServerError_WithInner(t *testing.T) {
	inner := NewBadParameterError("bad", nil)
	e := NewInternalServerError("wrap", inner)
	assert.Equal(t, ErrInternalServerError, e.Code)
	assert.Equal(t, "wrap", e.Message)
	assert.True(t, IsBadParameter(e.Inner))
}

func TestNewUnavailableError(t *testing.T) {
	e := NewUnavailableError("no tier", nil)
	assert.Equal(t, ErrUnavailable, e.Code)
	assert.True(t, IsUnavailable(e))
	assert.False(t, IsUnavailable(NewBadParameterError("x", nil)))
}

func TestRouterError_Error(t *testing.T) {
	assert.Equal(t, "x: msg", RouterError{Code: "x", Message: "msg"}.Error())
	assert.Equal(t, "x: msg: cause", RouterError{Code: "x", Message: "msg", Inner: errors.New("cause")}.Error())
}

func TestRouterError_Unwrap(t *testing.T) {
	inner := errors.New("cause")
	assert.Same(t, inner, RouterError{Inner: inner}.Unwrap())
	assert.Nil(t, RouterError{}.Unwrap())
}

func TestIsHelpers_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("list rooms: %w", NewEntityNotFoundError("gone", nil))
	assert.True(t, IsEntityNotFound(wrapped))
	assert.False(t, IsInternalServerError(wrapped))
	assert.False(t, IsEntityNotFound(errors.New("plain")))
}
