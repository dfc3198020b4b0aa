package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"bilingual-pdf/builder"
	"bilingual-pdf/engine"
	"bilingual-pdf/gematria"
	"bilingual-pdf/logger"
	"bilingual-pdf/normalize"
	"bilingual-pdf/sefaria"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e Error) Error() string {
	return e.Message
}

func NewError(code int, msg string) Error {
	return Error{Code: code, Message: msg}
}

func ErrBadRequest() Error {
	return NewError(fiber.StatusBadRequest, "invalid request body")
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.Is(err, normalize.ErrShapeMismatch),
		errors.Is(err, normalize.ErrInvalidReference),
		errors.Is(err, gematria.ErrInvalidNumeral),
		errors.Is(err, builder.ErrMisaligned):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, sefaria.ErrFetch),
		errors.Is(err, engine.ErrCompile),
		errors.Is(err, engine.ErrInvalidPDF):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.As(err, &fe):
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Code).JSON(apiErr)
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return c.Status(valErr.Status).JSON(valErr)
	}

	apiErr = NewError(statusFor(err), err.Error())
	logger.ErrorContext(c.UserContext(), "request failed",
		"request_id", c.Locals(requestIDKey),
		"path", c.Path(),
		"status", apiErr.Code,
		"error", err,
	)
	return c.Status(apiErr.Code).JSON(apiErr)
}
