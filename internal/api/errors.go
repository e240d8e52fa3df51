package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, internal_error, ...
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

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// ErrorHandler renders errors that escape handlers (unknown routes, panics
// recovered by middleware) in the same shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_error"
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
		switch status {
		case fiber.StatusNotFound:
			code = "not_found"
		case fiber.StatusMethodNotAllowed:
			code = "method_not_allowed"
		case fiber.StatusBadRequest:
			code = "bad_request"
		default:
			if status < 500 {
				code = "client_error"
			}
		}
	}

	return newError(c, status, code, message)
}
