// Package apperrors defines the typed error kinds from spec §7, so
// call sites can dispatch on kind with errors.As instead of string
// matching. Generalizes the teacher's single-purpose RoomError into a
// single Error struct that carries its Kind.
package apperrors

import "fmt"

// Kind identifies which of the spec's §7 error categories an error
// belongs to.
type Kind int

const (
	// KindProtocol: malformed JSON or binary frame on a socket.
	KindProtocol Kind = iota
	// KindAuthorization: non-creator start_game, or player_id not in room.
	KindAuthorization
	// KindNotFound: join/start/update against an unknown room_id.
	KindNotFound
	// KindTransientIO: broadcast send failure to one peer.
	KindTransientIO
	// KindFatal: bind failure or invariant violation during a tick.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindTransientIO:
		return "transient_io"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Error is a typed application error carrying a Kind and a
// human-readable reason, matching the "typed errors with human-readable
// reason" requirement in spec §4.2 / §7.
type Error struct {
	Kind   Kind
	Reason string
	Err    error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error of the given kind.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Wrap constructs an *Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// Protocol, Authorization, NotFound, TransientIO, and Fatal are
// convenience constructors for the five spec kinds.
func Protocol(reason string) *Error      { return New(KindProtocol, reason) }
func Authorization(reason string) *Error { return New(KindAuthorization, reason) }
func NotFound(reason string) *Error      { return New(KindNotFound, reason) }
func TransientIO(reason string) *Error   { return New(KindTransientIO, reason) }
func Fatal(reason string) *Error         { return New(KindFatal, reason) }
