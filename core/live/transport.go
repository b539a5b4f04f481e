package live

import "context"

// SessionConfig describes one streaming session to the remote model.
type SessionConfig struct {
	// Model is the transport-specific model identifier.
	Model string
	// SystemInstruction steers the model's persona for the session.
	SystemInstruction string
	// VoiceName selects the prebuilt synthesis voice.
	VoiceName string

	// InputTranscription and OutputTranscription request transcripts
	// for both sides of the conversation.
	InputTranscription  bool
	OutputTranscription bool

	// SearchGrounding enables web-search grounding with citation
	// metadata on responses.
	SearchGrounding bool

	// Declarations registers the functions the model may invoke.
	Declarations []FunctionDeclaration
}

// Callbacks deliver inbound transport activity. OnEvent is invoked
// once per decoded server event in wire arrival order; OnError reports
// a connection-fatal failure; OnClose fires exactly once when the
// connection ends for any reason.
type Callbacks struct {
	OnEvent func(Event)
	OnError func(error)
	OnClose func()
}

// Transport is an opaque bidirectional streaming connection to the
// remote speech model.
type Transport interface {
	// Connect establishes the session and starts inbound delivery.
	Connect(ctx context.Context, config SessionConfig, callbacks Callbacks) error
	// SendAudio streams one input frame in the input wire encoding.
	SendAudio(audio []byte) error
	// SendToolResponse acknowledges handled function invocations.
	SendToolResponse(responses []FunctionResponse) error
	// Close tears the connection down. Safe to call repeatedly.
	Close() error
}
