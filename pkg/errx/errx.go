// Package errx provides typed application errors that carry a stable code,
// a category and the HTTP status used when they reach the transport layer.
package errx

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
)

// Type clasifica un error para decidir cómo se reporta.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// defaultStatus maps a Type to the HTTP status used when none is registered.
var defaultStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeAuthorization: http.StatusForbidden,
	TypeInternal:      http.StatusInternalServerError,
	TypeExternal:      http.StatusBadGateway,
}

// Error es el error de dominio que viaja hasta el manejador HTTP global.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail adds a key/value pair to the error details and returns the error
// so calls can be chained.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Is matches two *Error values by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New crea un error sin código registrado.
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: statusFor(t),
	}
}

// Wrap envuelve un error de infraestructura. Si err ya es un *Error se
// devuelve tal cual para no perder su código original.
func Wrap(err error, message string, t Type) *Error {
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: statusFor(t),
		Err:        err,
	}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}

// IsCode reports whether err carries the registered code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code.Code
}

func statusFor(t Type) int {
	if s, ok := defaultStatus[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ============================================================================
// Registry
// ============================================================================

// Code describe un error registrado.
type Code struct {
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry agrupa los códigos de error de un módulo bajo un prefijo común.
type Registry struct {
	prefix string
	codes  map[string]Code
}

// NewRegistry crea un registro con el prefijo dado (p.ej. "INTERVIEW").
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]Code),
	}
}

// Register adds a code to the registry and returns it.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	c := Code{
		Code:       r.prefix + "_" + code,
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	r.codes[c.Code] = c
	return c
}

// New builds a fresh *Error for the code.
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.Code,
		Type:       code.Type,
		Message:    code.Message,
		HTTPStatus: code.HTTPStatus,
	}
}

// NewWithCause builds a fresh *Error for the code wrapping err.
func (r *Registry) NewWithCause(code Code, err error) *Error {
	e := r.New(code)
	e.Err = err
	return e
}

// Codes returns a copy of every registered code.
func (r *Registry) Codes() map[string]Code {
	out := make(map[string]Code, len(r.codes))
	maps.Copy(out, r.codes)
	return out
}
