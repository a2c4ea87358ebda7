package auth

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a bearer token was rejected.
type ErrorKind int

const (
	KindMissing ErrorKind = iota + 1
	KindMalformed
	KindExpired
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindMalformed:
		return "malformed"
	case KindExpired:
		return "expired"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// AuthError is the only error VerifyToken and ExtractBearer return for a rejected token.
type AuthError struct {
	Kind ErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: token %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth: token %s", e.Kind)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is matches any AuthError of the same kind, so errors.Is(err, ErrTokenExpired) works.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

var (
	ErrTokenMissing   = &AuthError{Kind: KindMissing}
	ErrTokenMalformed = &AuthError{Kind: KindMalformed}
	ErrTokenExpired   = &AuthError{Kind: KindExpired}

	// ErrSecretNotConfigured is a configuration error, not a token error.
	ErrSecretNotConfigured = errors.New("auth: signing secret is not configured")
)

// KindOf returns the kind of an AuthError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind, true
	}
	return 0, false
}

func newAuthError(kind ErrorKind, err error) error {
	return &AuthError{Kind: kind, Err: err}
}
