package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/logging"
)

var (
	errElevationDisabled = errors.New("elevation annotation is not enabled on this instance")
	errDisconnected      = errors.New("disconnected")
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, route_unavailable, elevation_unavailable, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errUnavailable returns a 503 error.
func errUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusServiceUnavailable, "unavailable", msg)
}

// errFromDomain maps pipeline errors onto HTTP responses.
func errFromDomain(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidPolyline):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrRouteUnavailable):
		return newError(c, fiber.StatusBadGateway, "route_unavailable", err.Error())
	case errors.Is(err, domain.ErrElevationUnavailable):
		return newError(c, fiber.StatusBadGateway, "elevation_unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return newError(c, fiber.StatusGatewayTimeout, "timeout", "upstream did not answer in time")
	default:
		logging.LoggerFromCtx(c.UserContext()).Error("unhandled error", "error", err)
		return errInternal(c, "internal error")
	}
}
