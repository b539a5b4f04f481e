package gemini

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/maahirlabs/tutor-core/core/live"
)

func decodeFixture(t *testing.T, raw string) []live.Event {
	t.Helper()

	var msg serverMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}
	return decodeServerMessage(msg)
}

func TestDecodeToolCallMessage(t *testing.T) {
	events := decodeFixture(t, `{
		"toolCall": {"functionCalls": [
			{"id": "call-1", "name": "setEmotion", "args": {"emotion": "happy"}}
		]}
	}`)

	if len(events) != 1 {
		t.Fatalf("expected a single event, got %d", len(events))
	}
	toolCalls, ok := events[0].(live.ToolCalls)
	if !ok {
		t.Fatalf("expected a tool calls event, got %T", events[0])
	}
	if len(toolCalls.Calls) != 1 || toolCalls.Calls[0].Name != "setEmotion" {
		t.Fatalf("unexpected calls: %+v", toolCalls.Calls)
	}
	if toolCalls.Calls[0].ID != "call-1" {
		t.Fatalf("expected call id to survive decoding, got %q", toolCalls.Calls[0].ID)
	}
}

func TestDecodeAudioAndTranscriptsInWireOrder(t *testing.T) {
	chunk := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03, 0x04})
	events := decodeFixture(t, `{
		"serverContent": {
			"modelTurn": {"parts": [{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "`+chunk+`"}}]},
			"inputTranscription": {"text": "what is"},
			"outputTranscription": {"text": "The answer"},
			"turnComplete": true
		}
	}`)

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if _, ok := events[0].(live.InputTranscription); !ok {
		t.Fatalf("expected input transcription first, got %T", events[0])
	}
	if _, ok := events[1].(live.OutputTranscription); !ok {
		t.Fatalf("expected output transcription second, got %T", events[1])
	}
	audioChunk, ok := events[2].(live.AudioChunk)
	if !ok {
		t.Fatalf("expected audio chunk third, got %T", events[2])
	}
	if len(audioChunk.Audio) != 4 {
		t.Fatalf("expected base64 audio to decode to 4 bytes, got %d", len(audioChunk.Audio))
	}
	if _, ok := events[3].(live.TurnComplete); !ok {
		t.Fatalf("expected turn completion last, got %T", events[3])
	}
}

func TestDecodeInterruptionPrecedesAudio(t *testing.T) {
	chunk := base64.StdEncoding.EncodeToString([]byte{0x00, 0x00})
	events := decodeFixture(t, `{
		"serverContent": {
			"interrupted": true,
			"modelTurn": {"parts": [{"inlineData": {"mimeType": "audio/pcm;rate=24000", "data": "`+chunk+`"}}]}
		}
	}`)

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if _, ok := events[0].(live.Interrupted); !ok {
		t.Fatalf("expected interruption before audio, got %T", events[0])
	}
}

func TestDecodeGroundingSkipsIncompleteChunks(t *testing.T) {
	events := decodeFixture(t, `{
		"serverContent": {
			"groundingMetadata": {"groundingChunks": [
				{"web": {"uri": "https://example.com/a", "title": "Source A"}},
				{"web": {"uri": "", "title": "No URI"}},
				{}
			]}
		}
	}`)

	if len(events) != 1 {
		t.Fatalf("expected a single event, got %d", len(events))
	}
	grounding, ok := events[0].(live.GroundingSources)
	if !ok {
		t.Fatalf("expected grounding event, got %T", events[0])
	}
	if len(grounding.Sources) != 1 || grounding.Sources[0].Title != "Source A" {
		t.Fatalf("unexpected sources: %+v", grounding.Sources)
	}
}

func TestDecodeEmptyMessageProducesNoEvents(t *testing.T) {
	if events := decodeFixture(t, `{"setupComplete": {}}`); len(events) != 0 {
		t.Fatalf("expected no events for setup ack, got %d", len(events))
	}
}

func TestBuildSetupIncludesRequestedFeatures(t *testing.T) {
	setup := buildSetup(live.SessionConfig{
		Model:               "models/gemini-2.5-flash-native-audio-preview-09-2025",
		SystemInstruction:   "You are a study buddy.",
		VoiceName:           "Fenrir",
		InputTranscription:  true,
		OutputTranscription: true,
		SearchGrounding:     true,
		Declarations: []live.FunctionDeclaration{
			live.NewFunctionDeclaration("endQuiz", "Ends the quiz.", nil),
		},
	})

	if setup.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != "Fenrir" {
		t.Fatalf("expected voice to propagate, got %+v", setup.GenerationConfig)
	}
	if setup.SystemInstruction == nil || len(setup.SystemInstruction.Parts) != 1 {
		t.Fatalf("expected single system instruction part, got %+v", setup.SystemInstruction)
	}
	if len(setup.Tools) != 2 {
		t.Fatalf("expected search tool and function declarations, got %+v", setup.Tools)
	}
	if setup.Tools[0].GoogleSearch == nil {
		t.Fatalf("expected search grounding tool first, got %+v", setup.Tools[0])
	}
	if setup.InputAudioTranscription == nil || setup.OutputAudioTranscription == nil {
		t.Fatalf("expected both transcription flags set")
	}
}
