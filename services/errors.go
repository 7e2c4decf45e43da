package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Business-rule failures surface as one of the typed errors below and are
// mapped to HTTP status codes at the controller boundary.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type AuthorizationError struct{ Message string }

func (e *AuthorizationError) Error() string { return e.Message }

type InvalidTransitionError struct{ Message string }

func (e *InvalidTransitionError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type InvalidOTPError struct{ Message string }

func (e *InvalidOTPError) Error() string { return e.Message }

// StatusCode translates a service error to an HTTP status.
func StatusCode(err error) int {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		authz      *AuthorizationError
		transition *InvalidTransitionError
		conflict   *ConflictError
		otp        *InvalidOTPError
	)
	switch {
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &authz):
		return fiber.StatusForbidden
	case errors.As(err, &transition):
		return fiber.StatusConflict
	case errors.As(err, &conflict):
		return fiber.StatusConflict
	case errors.As(err, &otp):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
