// Package gemini implements the live transport over the Gemini Live
// websocket API (BidiGenerateContent).
package gemini

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/codes"

	"github.com/maahirlabs/tutor-core/core/audio"
	"github.com/maahirlabs/tutor-core/core/live"
)

const (
	defaultEndpoint = "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"

	// setupTimeout bounds the wait for the server's setupComplete ack.
	setupTimeout = 10 * time.Second
)

// Client is a live transport backed by one Gemini Live websocket
// connection. The zero value is usable; Connect must succeed before
// SendAudio or SendToolResponse.
type Client struct {
	apiKey   string
	endpoint string

	connMu sync.Mutex
	conn   *websocket.Conn

	closeOnce sync.Once
	closed    chan struct{}
}

type ClientOption func(*Client)

// WithAPIKey overrides the GEMINI_API_KEY environment lookup.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithEndpoint overrides the websocket endpoint, primarily for tests.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		endpoint: defaultEndpoint,
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Connect dials the live endpoint, performs the setup handshake and
// starts inbound delivery. It returns once the server acknowledges the
// session configuration.
func (c *Client) Connect(ctx context.Context, config live.SessionConfig, callbacks live.Callbacks) (err error) {
	ctx, span := tracer.Start(ctx, "gemini.Connect")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	apiKey := c.apiKey
	if apiKey == "" {
		key, ok := os.LookupEnv("GEMINI_API_KEY")
		if !ok {
			return fmt.Errorf("gemini api key not found")
		}
		apiKey = key
	}

	liveURL, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("invalid live endpoint: %w", err)
	}
	queryParams := liveURL.Query()
	queryParams.Set("key", apiKey)
	liveURL.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, liveURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to open socket connection to gemini: %w", err)
	}

	if err := conn.WriteJSON(clientMessage{Setup: buildSetup(config)}); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send session setup: %w", err)
	}

	if err := awaitSetupComplete(conn); err != nil {
		conn.Close()
		return err
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	go c.readAndProcessMessages(conn, callbacks)

	return nil
}

func buildSetup(config live.SessionConfig) *setupPayload {
	setup := &setupPayload{
		Model: config.Model,
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
		},
	}
	if config.VoiceName != "" {
		setup.GenerationConfig.SpeechConfig = &speechConfig{
			VoiceConfig: voiceConfig{
				PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: config.VoiceName},
			},
		}
	}
	if config.SystemInstruction != "" {
		setup.SystemInstruction = &content{Parts: []part{{Text: config.SystemInstruction}}}
	}
	if config.SearchGrounding {
		setup.Tools = append(setup.Tools, toolPayload{GoogleSearch: &struct{}{}})
	}
	if len(config.Declarations) > 0 {
		setup.Tools = append(setup.Tools, toolPayload{FunctionDeclarations: config.Declarations})
	}
	if config.InputTranscription {
		setup.InputAudioTranscription = &transcriptionOpts{}
	}
	if config.OutputTranscription {
		setup.OutputAudioTranscription = &transcriptionOpts{}
	}
	return setup
}

func awaitSetupComplete(conn *websocket.Conn) error {
	conn.SetReadDeadline(time.Now().Add(setupTimeout))
	defer conn.SetReadDeadline(time.Time{})

	var msg serverMessage
	if err := conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("failed waiting for session setup ack: %w", err)
	}
	if msg.SetupComplete == nil {
		return fmt.Errorf("unexpected message before session setup ack")
	}
	return nil
}

// SendAudio streams one chunk of 16kHz little-endian PCM to the model.
func (c *Client) SendAudio(chunk []byte) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("gemini connection is not open")
	}
	msg := clientMessage{RealtimeInput: &realtimeInputPayload{
		MediaChunks: []inlineData{{
			MimeType: fmt.Sprintf("audio/pcm;rate=%d", audio.InputSampleRate),
			Data:     chunk,
		}},
	}}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write audio to gemini client: %w", err)
	}
	return nil
}

// SendToolResponse acknowledges handled function calls.
func (c *Client) SendToolResponse(responses []live.FunctionResponse) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("gemini connection is not open")
	}
	wireResponses := make([]functionResponse, 0, len(responses))
	for _, response := range responses {
		wireResponses = append(wireResponses, functionResponse{
			ID:       response.ID,
			Name:     response.Name,
			Response: response.Response,
		})
	}
	msg := clientMessage{ToolResponse: &toolResponsePayload{FunctionResponses: wireResponses}}
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write tool response to gemini client: %w", err)
	}
	return nil
}

// Close tears down the connection. Repeated calls are no-ops.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn != nil {
		c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.conn.Close()
		c.conn = nil
	}
	return nil
}

func (c *Client) readAndProcessMessages(conn *websocket.Conn, callbacks live.Callbacks) {
	defer func() {
		c.connMu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.connMu.Unlock()
		conn.Close()

		if callbacks.OnClose != nil {
			callbacks.OnClose()
		}
	}()

	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-c.closed:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
					logger.Error("Failed to read gemini websocket message", "error", err)
					if callbacks.OnError != nil {
						callbacks.OnError(err)
					}
				}
			}
			return
		}

		if callbacks.OnEvent != nil {
			for _, event := range decodeServerMessage(msg) {
				callbacks.OnEvent(event)
			}
		}
	}
}
