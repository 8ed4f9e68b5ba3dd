package handlers

import (
	"errors"
	"net/http"

	"seatrouter/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler register custom error handler.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	return map[string]int{
		service.ErrBadParameter:        http.StatusBadRequest,
		service.ErrEntityNotFound:      http.StatusNotFound,
		service.ErrInternalServerError: http.StatusInternalServerError,
		service.ErrUnavailable:         http.StatusServiceUnavailable,
	}
}

// HTTPErrorHandler turns handler errors into ErrResponse bodies.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}
	return http.StatusInternalServerError
}

// Handler handles error returned by echo Handlers. Echo's own errors (unknown route, wrong
// method) keep their status code.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		body       ErrorBody
		statusCode int
		routerErr  service.RouterError
		he         *echo.HTTPError
	)
	switch {
	case errors.As(err, &routerErr):
		body = ErrorBody{Code: routerErr.Code, Message: routerErr.Message}
		statusCode = h.getStatusCode(routerErr.Code)
	case errors.As(err, &he):
		m, _ := he.Message.(string)
		body = ErrorBody{Code: service.ErrBadParameter, Message: m}
		if he.Code >= http.StatusInternalServerError {
			body.Code = service.ErrInternalServerError
		}
		if he.Code == http.StatusNotFound {
			body.Code = service.ErrEntityNotFound
		}
		statusCode = he.Code
	default:
		body = ErrorBody{Code: service.ErrInternalServerError, Message: "an internal server error has occurred"}
		statusCode = http.StatusInternalServerError
	}

	level.Error(h.logger).Log(
		"msg", "HTTP request error",
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: &body})
}

// ErrorBody is the error object of an ErrResponse.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrResponse from server.
type ErrResponse struct {
	Error *ErrorBody `json:"error,omitempty"`
}
