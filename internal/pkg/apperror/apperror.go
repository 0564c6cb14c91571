// Package apperror carries the error taxonomy surfaced by the agent
// API. Every error leaving the service maps to one stable Kind so
// clients can branch without parsing message text.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind string

const (
	KindConfig              Kind = "ConfigError"
	KindPersistence         Kind = "PersistenceError"
	KindCredentialMissing   Kind = "CredentialMissing"
	KindUnsupportedProvider Kind = "UnsupportedProvider"
	KindModelUnavailable    Kind = "ModelUnavailable"
	KindBackendTimeout      Kind = "BackendTimeout"
	KindBackendRejected     Kind = "BackendRejected"
	KindMalformedRequest    Kind = "MalformedRequest"
	KindInternal            Kind = "InternalError"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind of any error, unwrapping as needed. Errors
// produced outside the taxonomy surface as KindInternal.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// StatusOf maps a Kind to the HTTP status the error middleware responds
// with.
func StatusOf(kind Kind) int {
	switch kind {
	case KindConfig, KindMalformedRequest, KindCredentialMissing, KindUnsupportedProvider:
		return fiber.StatusBadRequest
	case KindModelUnavailable:
		return fiber.StatusServiceUnavailable
	case KindBackendTimeout:
		return fiber.StatusGatewayTimeout
	case KindBackendRejected:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
