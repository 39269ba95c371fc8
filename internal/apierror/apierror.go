// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// FieldErrors wraps multiple per-field validation failures.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "Erro de validacao", Fields: fields}
}

// ── Error taxonomy ────────────────────────────────────────────────────────────
// Every error crossing a service boundary is one of these four kinds.
// Handlers translate the kind into an HTTP status via Status().

// Validation indicates malformed or out-of-range input. No state change occurred.
type Validation struct {
	Reason string
}

func (e *Validation) Error() string { return e.Reason }

func Validacao(format string, args ...interface{}) *Validation {
	return &Validation{Reason: fmt.Sprintf(format, args...)}
}

// NotFound indicates a referenced entity (gerente, lancamento, config) is absent.
type NotFound struct {
	Entidade string
	Ref      string
}

func (e *NotFound) Error() string {
	if e.Ref == "" {
		return e.Entidade + " nao encontrado"
	}
	return fmt.Sprintf("%s nao encontrado: %s", e.Entidade, e.Ref)
}

func NaoEncontrado(entidade, ref string) *NotFound {
	return &NotFound{Entidade: entidade, Ref: ref}
}

// Consistency indicates the requested operation would violate a ledger invariant.
// Never auto-corrected: surfaced to the caller with an explanation.
type Consistency struct {
	Reason string
}

func (e *Consistency) Error() string { return e.Reason }

func Inconsistencia(format string, args ...interface{}) *Consistency {
	return &Consistency{Reason: fmt.Sprintf(format, args...)}
}

// Integration indicates an external collaborator (activity feed, inventory mirror)
// is unreachable or returned garbage. The caller degrades gracefully.
type Integration struct {
	Op  string
	Err error
}

func (e *Integration) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *Integration) Unwrap() error { return e.Err }

func Integracao(op string, err error) *Integration {
	return &Integration{Op: op, Err: err}
}

// Status maps a taxonomy error to its HTTP status code.
// Unknown errors map to 500 so internals are never exposed.
func Status(err error) int {
	var (
		v *Validation
		n *NotFound
		c *Consistency
		i *Integration
	)
	switch {
	case errors.As(err, &v):
		return http.StatusBadRequest
	case errors.As(err, &n):
		return http.StatusNotFound
	case errors.As(err, &c):
		return http.StatusConflict
	case errors.As(err, &i):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
