// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure. The set is closed.
type Kind string

const (
	// KindRequest means the transport failed to send the request.
	KindRequest Kind = "REQUEST_ERROR"
	// KindResponse means the service answered with a status other than 200.
	KindResponse Kind = "RESPONSE_ERROR"
	// KindFileOpen means a local document could not be opened or read.
	KindFileOpen Kind = "FILE_OPEN_ERROR"
	// KindFileWrite means a local output could not be created or written.
	KindFileWrite Kind = "FILE_WRITE_ERROR"
	// KindJSONDecode means a successful body was not well-formed JSON.
	KindJSONDecode Kind = "JSON_DECODE_ERROR"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrRequest    = &Error{Kind: KindRequest}
	ErrResponse   = &Error{Kind: KindResponse}
	ErrFileOpen   = &Error{Kind: KindFileOpen}
	ErrFileWrite  = &Error{Kind: KindFileWrite}
	ErrJSONDecode = &Error{Kind: KindJSONDecode}
)

// Error is the single failure shape of this package: a kind, a message and
// an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ServiceError carries the diagnostic body of a non-200 response. Its
// message is the body verbatim.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string { return e.Body }
