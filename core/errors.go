package session

import "errors"

// Session error taxonomy. Any of these during startup or message
// processing is fatal to the current session, never to the process:
// status goes to ERROR, a user-visible message is surfaced and the
// session is fully torn down. Silence timeout is not an error.
var (
	// ErrDevice marks microphone or output device failures.
	ErrDevice = errors.New("audio device error")
	// ErrConnection marks transport open/send/receive failures.
	ErrConnection = errors.New("connection error")
	// ErrProtocol marks malformed or unexpected inbound messages.
	ErrProtocol = errors.New("protocol error")
	// ErrPlayback marks decode or playback scheduling failures.
	ErrPlayback = errors.New("playback error")
)
