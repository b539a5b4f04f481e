// Package live defines the contract between the session engine and a
// real-time speech model transport.
//
// A transport is an opaque bidirectional streaming connection: outbound
// it accepts session setup, raw audio and tool responses; inbound it
// delivers typed server events through callbacks. Event kinds map one
// to one onto the wire message shapes the engine multiplexes:
//
//   - ToolCalls (server.tool_calls): model-issued function invocations.
//   - GroundingSources (server.grounding): citation sources backing the
//     in-flight response.
//   - InputTranscription (server.input_transcription): user speech
//     transcript fragment.
//   - OutputTranscription (server.output_transcription): model speech
//     transcript fragment.
//   - AudioChunk (server.audio): decoded synthesized speech segment.
//   - Interrupted (server.interrupted): the model was talked over and
//     all scheduled playback must be discarded.
//   - TurnComplete (server.turn_complete): the current exchange ended.
package live
