package mcp

import (
	"fmt"
	"sync"
)

// SessionState is the transport handshake state
type SessionState int

const (
	// StateUninitialized is the state before the initialize exchange completes
	StateUninitialized SessionState = iota
	// StateReady accepts tools/list and tools/call requests
	StateReady
	// StateClosed rejects all further requests
	StateClosed
)

// String returns the state name for logging
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session tracks the three-step MCP handshake for a transport:
// initialize -> notifications/initialized -> operate. Tool requests are
// only dispatched while the session is Ready.
type Session struct {
	mu          sync.Mutex
	state       SessionState
	initialized bool // initialize request seen, awaiting the initialized notification
}

// NewSession creates a session in the Uninitialized state
func NewSession() *Session {
	return &Session{state: StateUninitialized}
}

// State returns the current handshake state
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initialize records the initialize request. Valid only once, before the
// session is ready or closed.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return fmt.Errorf("initialize not allowed in state %s", s.state)
	}
	if s.initialized {
		return fmt.Errorf("initialize already received")
	}
	s.initialized = true
	return nil
}

// ConfirmInitialized handles the initialized notification and moves the
// session to Ready. Requires a prior initialize request.
func (s *Session) ConfirmInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return fmt.Errorf("initialized notification not allowed in state %s", s.state)
	}
	if !s.initialized {
		return fmt.Errorf("initialized notification before initialize request")
	}
	s.state = StateReady
	return nil
}

// RequireReady returns an error unless the handshake has completed
func (s *Session) RequireReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return fmt.Errorf("server not initialized (state: %s)", s.state)
	}
	return nil
}

// Close moves the session to Closed. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateClosed
}
