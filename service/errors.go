package service

import (
	"errors"
	"fmt"
)

const (
	ErrInternalServerError = "internal_server_error"
	ErrBadParameter        = "bad_parameter"
	ErrEntityNotFound      = "entity_not_found"
	ErrUnavailable         = "unavailable"
)

// RouterError is the coded error returned by handlers of this module. RouterErrorToGRPC turns the
// code into a gRPC status; Message is what the caller sees, Inner stays in the logs.
type RouterError struct {
	Code    string
	Message string
	Inner   error
}

func (e RouterError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e RouterError) Unwrap() error { return e.Inner }

func NewEntityNotFoundError(message string, inner error) RouterError {
	return RouterError{Code: ErrEntityNotFound, Message: message, Inner: inner}
}

func IsEntityNotFound(err error) bool {
	var e RouterError
	return errors.As(err, &e) && e.Code == ErrEntityNotFound
}

func NewInternalServerError(message string, inner error) RouterError {
	return RouterError{Code: ErrInternalServerError, Message: message, Inner: inner}
}

func IsInternalServerError(err error) bool {
	var e RouterError
	return errors.As(err, &e) && e.Code == ErrInternalServerError
}

func NewBadParameterError(message string, inner error) RouterError {
	return RouterError{Code: ErrBadParameter, Message: message, Inner: inner}
}

func IsBadParameter(err error) bool {
	var e RouterError
	return errors.As(err, &e) && e.Code == ErrBadParameter
}

func NewUnavailableError(message string, inner error) RouterError {
	return RouterError{Code: ErrUnavailable, Message: message, Inner: inner}
}

func IsUnavailable(err error) bool {
	var e RouterError
	return errors.As(err, &e) && e.Code == ErrUnavailable
}
