package flashair

import "errors"

// Errors returned by client operations. All of them abort the operation
// that raised them; there is no retry or partial-success reporting.
var (
	// Remote communication errors
	ErrTransport = errors.New("flashair: transport failure")
	ErrProtocol  = errors.New("flashair: unexpected response header")
	ErrParse     = errors.New("flashair: malformed listing line")

	// Local filesystem errors during sync
	ErrTargetMissing = errors.New("flashair: sync target does not exist")
	ErrConflict      = errors.New("flashair: local path type conflict")
)
