// Package httpx holds the response envelope shared by every handler.
package httpx

import (
	"time"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the success body: {success: true, data}.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the failure body.
type ErrorEnvelope struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Code      string         `json:"code"`
	Type      errx.Type      `json:"type"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func OK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

func Message(c *fiber.Ctx, msg string) error {
	return c.JSON(Envelope{Success: true, Message: msg})
}

// Fail writes err using its registered status. Unknown errors become 500
// without leaking their text.
func Fail(c *fiber.Ctx, err error) error {
	requestID, _ := c.Locals("requestid").(string)

	if e, ok := errx.As(err); ok {
		status := e.HTTPStatus
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(ErrorEnvelope{
			Message:   e.Message,
			Code:      e.Code,
			Type:      e.Type,
			Details:   e.Details,
			RequestID: requestID,
		})
	}

	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(ErrorEnvelope{
			Message:   fe.Message,
			Code:      "HTTP_ERROR",
			Type:      errx.TypeValidation,
			RequestID: requestID,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorEnvelope{
		Message:   "Internal server error",
		Code:      "INTERNAL_ERROR",
		Type:      errx.TypeInternal,
		RequestID: requestID,
	})
}

// ParseBody decodes the JSON body or returns a validation error.
func ParseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errx.New("Invalid request body", errx.TypeValidation).WithDetail("error", err.Error())
	}
	return nil
}

// QueryTime parses an optional RFC3339 query parameter.
func QueryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errx.New("Invalid time parameter, use RFC3339", errx.TypeValidation).
			WithDetail("param", key).
			WithDetail("value", raw)
	}
	return &t, nil
}
