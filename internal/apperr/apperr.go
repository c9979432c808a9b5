// Package apperr carries the error taxonomy shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP rendering.
type Kind string

const (
	KindInvalidRequest  Kind = "invalid_request"
	KindInvalidQuantity Kind = "invalid_quantity"
	KindUpstreamAuth    Kind = "upstream_auth"
	KindUpstreamDB      Kind = "upstream_db"
	KindUpstreamEmail   Kind = "upstream_email"
	KindConfig          Kind = "config"
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindUnknown         Kind = "unknown"
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindInvalidRequest, KindInvalidQuantity:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is a label code (see i18n) or a
// human readable text; Details carries provider detail or field violations.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can test errors.Is(err, apperr.InvalidQuantity).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind && t.Message == "" && t.Err == nil
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	InvalidRequest  = &Error{Kind: KindInvalidRequest}
	InvalidQuantity = &Error{Kind: KindInvalidQuantity}
	UpstreamAuth    = &Error{Kind: KindUpstreamAuth}
	UpstreamDB      = &Error{Kind: KindUpstreamDB}
	UpstreamEmail   = &Error{Kind: KindUpstreamEmail}
	Config          = &Error{Kind: KindConfig}
	Unauthorized    = &Error{Kind: KindUnauthorized}
	Forbidden       = &Error{Kind: KindForbidden}
	Unknown         = &Error{Kind: KindUnknown}
)

// New builds an error of kind k.
func New(k Kind, message string, details any) *Error {
	return &Error{Kind: k, Message: message, Details: details}
}

// Wrap builds an error of kind k around cause. The cause message becomes
// the details so provider messages reach the client.
func Wrap(k Kind, message string, cause error) *Error {
	e := &Error{Kind: k, Message: message, Err: cause}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// From classifies any error, falling back to KindUnknown.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnknown, Message: "unknown_error", Err: err}
}
