package session

import (
	"context"

	"github.com/maahirlabs/tutor-core/core/audio"
	"github.com/maahirlabs/tutor-core/core/live"
)

type Option func(*Session)

// AudioInput is a microphone client delivering fixed-size frames of
// normalized float32 samples at its reported encoding.
type AudioInput interface {
	EncodingInfo() audio.EncodingInfo
	StartCapture(ctx context.Context, onAudio func(frames []float32)) error
	StopCapture() error
	Close() error
}

// AudioOutput is a playback client consuming wire-encoded audio at its
// reported encoding.
type AudioOutput interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer() error
	Close() error
}

// WithTransport sets the factory used to create a fresh transport for
// each start/stop cycle.
func WithTransport(dial func() live.Transport) Option {
	return func(s *Session) {
		if dial != nil {
			s.dialTransport = dial
		}
	}
}

func WithAudioInput(client AudioInput) Option {
	return func(s *Session) { s.input = client }
}

func WithAudioOutput(client AudioOutput) Option {
	return func(s *Session) { s.output = client }
}

func WithModel(model string) Option {
	return func(s *Session) { s.model = model }
}

func WithVoice(voiceName string) Option {
	return func(s *Session) { s.voiceName = voiceName }
}

func WithSystemInstruction(instruction string) Option {
	return func(s *Session) { s.systemInstruction = instruction }
}

// WithUpdateCallback registers a callback fired after any observable
// state change. The callback runs outside session locks and should
// grab a Snapshot rather than retain state.
func WithUpdateCallback(callback func()) Option {
	return func(s *Session) {
		if callback != nil {
			s.onUpdate = callback
		}
	}
}

// WithErrorCallback registers a callback for session-fatal errors.
// Silence timeout is a graceful termination and does not fire it.
func WithErrorCallback(callback func(err error)) Option {
	return func(s *Session) {
		if callback != nil {
			s.onError = callback
		}
	}
}
