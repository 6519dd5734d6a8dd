package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var kindStatus = map[errs.Kind]int{
	errs.KindNotFound:         http.StatusNotFound,
	errs.KindPermissionDenied: http.StatusForbidden,
	errs.KindInvalidState:     http.StatusConflict,
	errs.KindInvalidInput:     http.StatusBadRequest,
	errs.KindUnauthenticated:  http.StatusUnauthorized,
}

// errorBody maps err to its status and response body. Internal errors never expose
// their message.
func errorBody(err error) (int, Error) {
	kind := errs.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		return http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Kind:    string(errs.KindInternal),
			Message: "internal error",
		}
	}
	return status, Error{Code: status, Kind: string(kind), Message: err.Error()}
}

func writeError(c echo.Context, err error) error {
	status, body := errorBody(err)
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(status, body)
}

// HTTPErrorHandler renders echo errors (unknown routes, binding failures, panics
// recovered by middleware) in the API error format.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := errs.KindInternal
		switch he.Code {
		case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
			kind = errs.KindInvalidInput
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			kind = errs.KindNotFound
		case http.StatusUnauthorized:
			kind = errs.KindUnauthenticated
		case http.StatusForbidden:
			kind = errs.KindPermissionDenied
		}

		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
			message = m
		}
		_ = c.JSON(he.Code, Error{Code: he.Code, Kind: string(kind), Message: message})
		return
	}

	_ = writeError(c, err)
}
