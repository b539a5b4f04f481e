package gemini

import (
	"encoding/json"

	"github.com/maahirlabs/tutor-core/core/live"
)

// Client-to-server frames. Exactly one field is set per frame.
type clientMessage struct {
	Setup         *setupPayload         `json:"setup,omitempty"`
	RealtimeInput *realtimeInputPayload `json:"realtimeInput,omitempty"`
	ToolResponse  *toolResponsePayload  `json:"toolResponse,omitempty"`
}

type setupPayload struct {
	Model                    string             `json:"model"`
	GenerationConfig         generationConfig   `json:"generationConfig"`
	SystemInstruction        *content           `json:"systemInstruction,omitempty"`
	Tools                    []toolPayload      `json:"tools,omitempty"`
	InputAudioTranscription  *transcriptionOpts `json:"inputAudioTranscription,omitempty"`
	OutputAudioTranscription *transcriptionOpts `json:"outputAudioTranscription,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string      `json:"responseModalities"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

// inlineData carries audio; Data round-trips as base64 through
// encoding/json's []byte handling.
type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type toolPayload struct {
	GoogleSearch         *struct{}                  `json:"googleSearch,omitempty"`
	FunctionDeclarations []live.FunctionDeclaration `json:"functionDeclarations,omitempty"`
}

type transcriptionOpts struct{}

type realtimeInputPayload struct {
	MediaChunks []inlineData `json:"mediaChunks"`
}

type toolResponsePayload struct {
	FunctionResponses []functionResponse `json:"functionResponses"`
}

type functionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Server-to-client frames.
type serverMessage struct {
	SetupComplete *struct{}             `json:"setupComplete,omitempty"`
	ToolCall      *toolCallPayload      `json:"toolCall,omitempty"`
	ServerContent *serverContentPayload `json:"serverContent,omitempty"`
}

type toolCallPayload struct {
	FunctionCalls []functionCall `json:"functionCalls"`
}

type functionCall struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type serverContentPayload struct {
	ModelTurn           *content              `json:"modelTurn,omitempty"`
	InputTranscription  *transcriptionPayload `json:"inputTranscription,omitempty"`
	OutputTranscription *transcriptionPayload `json:"outputTranscription,omitempty"`
	GroundingMetadata   *groundingMetadata    `json:"groundingMetadata,omitempty"`
	Interrupted         bool                  `json:"interrupted,omitempty"`
	TurnComplete        bool                  `json:"turnComplete,omitempty"`
}

type transcriptionPayload struct {
	Text string `json:"text"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webSource `json:"web,omitempty"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// decodeServerMessage maps one inbound frame onto transport events in
// wire order: tool calls, grounding, transcripts, interruption, audio,
// then turn completion.
func decodeServerMessage(msg serverMessage) []live.Event {
	var decoded []live.Event

	if msg.ToolCall != nil && len(msg.ToolCall.FunctionCalls) > 0 {
		calls := make([]live.FunctionCall, 0, len(msg.ToolCall.FunctionCalls))
		for _, call := range msg.ToolCall.FunctionCalls {
			calls = append(calls, live.FunctionCall{ID: call.ID, Name: call.Name, Args: call.Args})
		}
		decoded = append(decoded, live.NewToolCalls(calls))
	}

	serverContent := msg.ServerContent
	if serverContent == nil {
		return decoded
	}

	if serverContent.GroundingMetadata != nil {
		var sources []live.Source
		for _, chunk := range serverContent.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
				continue
			}
			sources = append(sources, live.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
		if len(sources) > 0 {
			decoded = append(decoded, live.NewGroundingSources(sources))
		}
	}

	if serverContent.InputTranscription != nil {
		decoded = append(decoded, live.NewInputTranscription(serverContent.InputTranscription.Text))
	}
	if serverContent.OutputTranscription != nil {
		decoded = append(decoded, live.NewOutputTranscription(serverContent.OutputTranscription.Text))
	}

	if serverContent.Interrupted {
		decoded = append(decoded, live.NewInterrupted())
	}

	if serverContent.ModelTurn != nil && len(serverContent.ModelTurn.Parts) > 0 {
		if data := serverContent.ModelTurn.Parts[0].InlineData; data != nil && len(data.Data) > 0 {
			decoded = append(decoded, live.NewAudioChunk(data.Data))
		}
	}

	if serverContent.TurnComplete {
		decoded = append(decoded, live.NewTurnComplete())
	}

	return decoded
}
