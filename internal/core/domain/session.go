package domain

import "errors"

// SessionState is the lifecycle state of the process-wide session.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateBootstrapping   SessionState = "bootstrapping"
	StateAuthenticated   SessionState = "authenticated"
)

var (
	ErrNoToken          = errors.New("no auth token stored")
	ErrLoginFailed      = errors.New("login failed")
	ErrRegisterFailed   = errors.New("registration failed")
	ErrSessionInvalid   = errors.New("session invalid")
	ErrNotAuthenticated = errors.New("not authenticated")
)
