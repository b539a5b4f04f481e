package live

import "encoding/json"

const (
	// KindToolCalls identifies a batch of model-issued function invocations.
	KindToolCalls Kind = "server.tool_calls"
	// KindGroundingSources identifies citation sources for the in-flight response.
	KindGroundingSources Kind = "server.grounding"
	// KindInputTranscription identifies a user-side transcript fragment.
	KindInputTranscription Kind = "server.input_transcription"
	// KindOutputTranscription identifies a model-side transcript fragment.
	KindOutputTranscription Kind = "server.output_transcription"
	// KindAudioChunk identifies a synthesized speech segment.
	KindAudioChunk Kind = "server.audio"
	// KindInterrupted identifies a model-side playback interruption.
	KindInterrupted Kind = "server.interrupted"
	// KindTurnComplete identifies the end of the current exchange.
	KindTurnComplete Kind = "server.turn_complete"
)

// FunctionCall is one model-issued invocation inside a ToolCalls batch.
// Arguments are kept raw; decoding is the dispatcher's concern.
type FunctionCall struct {
	ID   string
	Name string
	Args json.RawMessage
}

// FunctionResponse acknowledges a FunctionCall back to the model.
type FunctionResponse struct {
	ID       string
	Name     string
	Response map[string]any
}

// Source is one web reference the model used to ground its answer.
// Duplicates across grounding batches are preserved in arrival order.
type Source struct {
	URI   string
	Title string
}

// ToolCalls carries a batch of function invocations in arrival order.
type ToolCalls struct {
	Base
	Calls []FunctionCall
}

func NewToolCalls(calls []FunctionCall) ToolCalls {
	return ToolCalls{Base: NewBase(KindToolCalls), Calls: calls}
}

// GroundingSources carries citation sources in arrival order.
type GroundingSources struct {
	Base
	Sources []Source
}

func NewGroundingSources(sources []Source) GroundingSources {
	return GroundingSources{Base: NewBase(KindGroundingSources), Sources: sources}
}

// InputTranscription carries a fragment of the user's transcribed speech.
type InputTranscription struct {
	Base
	Text string
}

func NewInputTranscription(text string) InputTranscription {
	return InputTranscription{Base: NewBase(KindInputTranscription), Text: text}
}

// OutputTranscription carries a fragment of the model's transcribed speech.
type OutputTranscription struct {
	Base
	Text string
}

func NewOutputTranscription(text string) OutputTranscription {
	return OutputTranscription{Base: NewBase(KindOutputTranscription), Text: text}
}

// AudioChunk carries one decoded synthesized speech segment in the
// output wire encoding.
type AudioChunk struct {
	Base
	Audio []byte
}

func NewAudioChunk(audio []byte) AudioChunk {
	return AudioChunk{Base: NewBase(KindAudioChunk), Audio: audio}
}

// Interrupted signals that the user talked over the model and every
// scheduled playback segment must be discarded immediately.
type Interrupted struct {
	Base
}

func NewInterrupted() Interrupted {
	return Interrupted{Base: NewBase(KindInterrupted)}
}

// TurnComplete signals the end of one request/response exchange.
type TurnComplete struct {
	Base
}

func NewTurnComplete() TurnComplete {
	return TurnComplete{Base: NewBase(KindTurnComplete)}
}
