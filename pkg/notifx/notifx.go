// Package notifx sends transactional email. Delivery is best-effort: callers
// get a Result and decide whether to log it, never a reason to roll back.
package notifx

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/hrms/pkg/errx"
)

// Attachment is a file sent with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is one outgoing email. From defaults to the configured sender.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Result reports the outcome of one dispatch.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

func failed(err error) Result { return Result{Success: false, Error: err.Error()} }

// Sender delivers a fully rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("NOTIFICATION")

var (
	CodeTemplateNotFound = ErrRegistry.Register("TEMPLATE_NOT_FOUND", errx.TypeInternal, http.StatusInternalServerError, "Email template not found")
	CodeTemplateInvalid  = ErrRegistry.Register("TEMPLATE_INVALID", errx.TypeInternal, http.StatusInternalServerError, "Email template could not be rendered")
	CodeNoRecipients     = ErrRegistry.Register("NO_RECIPIENTS", errx.TypeValidation, http.StatusBadRequest, "Message has no recipients")
	CodeDeliveryFailed   = ErrRegistry.Register("DELIVERY_FAILED", errx.TypeExternal, http.StatusBadGateway, "Email delivery failed")
	CodeInvalidSettings  = ErrRegistry.Register("INVALID_SETTINGS", errx.TypeValidation, http.StatusBadRequest, "Invalid email settings")
)

func ErrTemplateNotFound(name string) *errx.Error {
	return ErrRegistry.New(CodeTemplateNotFound).WithDetail("template", name)
}

func ErrTemplateInvalid(name string, err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeTemplateInvalid, err).WithDetail("template", name)
}

func ErrNoRecipients() *errx.Error {
	return ErrRegistry.New(CodeNoRecipients)
}

func ErrDeliveryFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeDeliveryFailed, err)
}

func ErrInvalidSettings(reason string) *errx.Error {
	return ErrRegistry.New(CodeInvalidSettings).WithDetail("reason", reason)
}
