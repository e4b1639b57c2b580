package auth

import (
	"errors"
	"net/http"
)

// Kind classifies authentication failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindMalformed
	KindInvalidSignature
	KindExpired
	KindUnauthenticated
	KindInvalidToken
	KindTokenExpired
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindMalformed:
		return "malformed token"
	case KindInvalidSignature:
		return "invalid signature"
	case KindExpired:
		return "expired"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidToken:
		return "invalid token"
	case KindTokenExpired:
		return "token expired"
	case KindConfiguration:
		return "configuration error"
	default:
		return "unknown"
	}
}

// Error is an authentication failure of a known Kind. Two errors match under
// errors.Is when their kinds are equal.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "auth: " + e.Kind.String()
	}
	return "auth: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrMalformed          = &Error{Kind: KindMalformed}
	ErrInvalidSignature   = &Error{Kind: KindInvalidSignature}
	ErrExpired            = &Error{Kind: KindExpired}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken}
	ErrTokenExpired       = &Error{Kind: KindTokenExpired}
	ErrConfiguration      = &Error{Kind: KindConfiguration}
)

var (
	// ErrNoToken is the cause of an Unauthenticated error when no bearer token was sent.
	ErrNoToken = errors.New("no token provided")
	// ErrUnknownSubject is the cause of an Unauthenticated error when the token
	// subject no longer exists.
	ErrUnknownSubject = errors.New("user not found")
)

func newError(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the Kind of err, or KindUnknown when err is not an auth error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusOf maps an authentication error to an HTTP status and client message.
func StatusOf(err error) (int, string) {
	switch KindOf(err) {
	case KindInvalidCredentials:
		return http.StatusUnauthorized, "Invalid credentials"
	case KindUnauthenticated:
		if errors.Is(err, ErrUnknownSubject) {
			return http.StatusUnauthorized, "User not found"
		}
		return http.StatusUnauthorized, "No token provided"
	case KindInvalidToken, KindMalformed, KindInvalidSignature:
		return http.StatusUnauthorized, "Invalid token"
	case KindTokenExpired, KindExpired:
		return http.StatusUnauthorized, "Token expired"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
