// Package apperr defines the error taxonomy shared by the services and the
// transport layer. Every failure a client can act on carries a stable Kind.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindForbidden            Kind = "FORBIDDEN"
	KindInvalidSchedule      Kind = "INVALID_SCHEDULE"
	KindInvalidParticipants  Kind = "INVALID_PARTICIPANTS"
	KindDuplicateParticipant Kind = "DUPLICATE_PARTICIPANT"
	KindInvalidOperation     Kind = "INVALID_OPERATION"
	KindSelfFollow           Kind = "SELF_FOLLOW"
	KindDuplicateFollow      Kind = "DUPLICATE_FOLLOW"

	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindInternal        Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error of the same kind, so sentinels below work with errors.Is
// regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func NotFound(msg string) error            { return New(KindNotFound, msg) }
func Forbidden(msg string) error           { return New(KindForbidden, msg) }
func InvalidSchedule(msg string) error     { return New(KindInvalidSchedule, msg) }
func InvalidParticipants(msg string) error { return New(KindInvalidParticipants, msg) }
func InvalidOperation(msg string) error    { return New(KindInvalidOperation, msg) }
func InvalidArg(msg string) error          { return New(KindInvalidArgument, msg) }
func Unauthenticated(msg string) error     { return New(KindUnauthenticated, msg) }
func AlreadyExists(msg string) error       { return New(KindAlreadyExists, msg) }

func Internal(cause error) error {
	return Wrap(KindInternal, "internal error", cause)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err. Internal failures never
// leak their cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal error"
}
