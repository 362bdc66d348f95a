package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can tell "the peer misbehaves" from
// "my own setup is broken".
type Kind int

const (
	// KindConfiguration covers malformed keys, wrong key/IV lengths, wrong curves
	// and calls made out of order. Never retried automatically.
	KindConfiguration Kind = iota + 1
	// KindAuthentication covers signature and MAC mismatches.
	KindAuthentication
	// KindIntegrity covers invalid padding or undecryptable ciphertext.
	KindIntegrity
	// KindEngine covers faults of the RNG or the underlying primitives.
	KindEngine
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindAuthentication:
		return "authentication failure"
	case KindIntegrity:
		return "integrity failure"
	case KindEngine:
		return "engine failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is.
var (
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrIntegrity      = &Error{Kind: KindIntegrity}
	ErrEngine         = &Error{Kind: KindEngine}
)

// Error is the single error type returned by the crypto core.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels above work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// ConfigurationError wraps err as a KindConfiguration failure of op.
func ConfigurationError(op string, err error) error {
	return &Error{Kind: KindConfiguration, Op: op, Err: err}
}

// AuthenticationError reports a signature or MAC mismatch during op.
func AuthenticationError(op string, err error) error {
	return &Error{Kind: KindAuthentication, Op: op, Err: err}
}

// IntegrityError reports a padding or ciphertext failure during op.
// The cause is deliberately dropped so nothing about the failing byte leaks.
func IntegrityError(op string) error {
	return &Error{Kind: KindIntegrity, Op: op}
}

// EngineError wraps a fault of the RNG or a primitive.
func EngineError(op string, err error) error {
	return &Error{Kind: KindEngine, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
