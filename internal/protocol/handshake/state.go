package handshake

import (
	"errors"
	"fmt"

	"autocrypt/internal/domain"
)

// State is a step of the handshake state machine.
type State int

const (
	StateStart State = iota
	StateEphemeralGenerated
	StateSecretAgreed
	StateSigned
	StateVerified
	StateKeysDerived
	StateReady
	StateAborted
)

var stateNames = [...]string{
	StateStart:              "Start",
	StateEphemeralGenerated: "EphemeralGenerated",
	StateSecretAgreed:       "SecretAgreed",
	StateSigned:             "Signed",
	StateVerified:           "Verified",
	StateKeysDerived:        "KeysDerived",
	StateReady:              "Ready",
	StateAborted:            "Aborted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrInvalidState is wrapped when an operation is called out of order.
	ErrInvalidState = errors.New("operation not allowed in current state")
	// ErrBadSignature is wrapped by the authentication error of a rejected handshake.
	ErrBadSignature = errors.New("handshake signature does not verify")
)

// Observer is told about every state change.
type Observer func(from, to State)

// Option configures an Initiator or Responder.
type Option func(*machine)

// WithObserver registers fn for state changes.
func WithObserver(fn Observer) Option {
	return func(m *machine) { m.observer = fn }
}

type machine struct {
	state    State
	observer Observer
}

func newMachine(opts []Option) machine {
	m := machine{state: StateStart}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// State returns the current state.
func (m *machine) State() State { return m.state }

func (m *machine) advance(to State) {
	from := m.state
	m.state = to
	if m.observer != nil {
		m.observer(from, to)
	}
}

func (m *machine) expect(op string, want State) error {
	if m.state != want {
		return domain.ConfigurationError(op, fmt.Errorf("%w: %s", ErrInvalidState, m.state))
	}
	return nil
}

// abort moves to Aborted and passes err through.
func (m *machine) abort(err error) error {
	if m.state != StateAborted {
		m.advance(StateAborted)
	}
	return err
}
