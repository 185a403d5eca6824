package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loan-origination/internal/adapter/middleware"
	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/auth"
)

const msgValidationFailed = "validation failed"

// bindAndValidate writes the 400/422 response itself and reports whether the
// handler may continue.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   msgValidationFailed,
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func callerOf(c echo.Context) auth.Caller {
	caller, _ := middleware.CallerFrom(c)
	return caller
}

// writeError maps usecase errors onto status codes. Anything unclassified is
// logged and hidden behind a generic 500.
func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, apperr.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, apperr.ErrUnauthenticated):
		code = http.StatusUnauthorized
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"route":  c.Path(),
		}).Error("unhandled error")
		return c.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
