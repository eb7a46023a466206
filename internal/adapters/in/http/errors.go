package http

import (
	"errors"
	"net/http"

	"bookstore/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func fail(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Success: false, Error: message})
}

// failWith maps a use case error to a status code. Faults are logged and
// answered with a generic message.
func (s *Server) failWith(ctx echo.Context, err error, message string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return fail(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrs):
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	s.logger.Error(message,
		zap.String("path", ctx.Path()),
		zap.Error(err),
	)
	return fail(ctx, http.StatusInternalServerError, message)
}
