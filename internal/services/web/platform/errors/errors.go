// Package errors defines web typed application errors.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
)

// Error is a typed web application failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	// Err is the underlying cause, kept for logs and errors.Is checks.
	Err error
}

// Error renders the human-readable message.
func (e Error) Error() string {
	message := e.Message
	if message == "" {
		message = string(e.Kind)
	}
	if e.Err != nil {
		return message + ": " + e.Err.Error()
	}
	return message
}

// Unwrap returns the underlying cause.
func (e Error) Unwrap() error {
	return e.Err
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds a typed Error around cause with a localization key.
func Wrap(kind Kind, key string, message string, cause error) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message, Err: cause}
}

// KindOf returns the kind of the first typed Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return ""
	}
	return strings.TrimSpace(appErr.Key)
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
