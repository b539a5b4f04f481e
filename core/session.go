// Package session implements the real-time voice tutoring session
// engine: it streams microphone audio to a live speech model, plays
// synthesized responses back gaplessly, accumulates transcripts for
// both sides of the conversation and runs the model-driven quiz mode.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/maahirlabs/tutor-core/core/audio"
	"github.com/maahirlabs/tutor-core/core/live"
	"github.com/maahirlabs/tutor-core/core/live/gemini"
)

const (
	defaultModel     = "models/gemini-2.5-flash-native-audio-preview-09-2025"
	defaultVoiceName = "Fenrir"

	defaultSystemInstruction = "You are Maahir, a friendly and patient AI study buddy for students of all ages. Your goal is to make learning engaging and accessible. You can explain complex topics simply, help with homework problems, translate between English and Gujarati, and provide encouragement. When a user asks for a quiz, you MUST use the `startQuiz` function to generate at least 3-5 multiple-choice questions. Ensure all quiz content is in Gujarati. When the user wants to stop the quiz, you MUST call the `endQuiz` function. You have access to Google Search for current information. Use the `setEmotion` function to reflect a positive and encouraging tone (`HAPPY`, `EXCITED`). You must respond ONLY in Gujarati. Never reveal you are an AI or mention Google. Always stay in character as Maahir, the expert study buddy."
)

// Session owns one start/stop cycle of a live tutoring conversation:
// the transport connection, the capture stream, the silence timer and
// every in-flight playback segment. At most one cycle is active at a
// time; Start while active is a no-op and Stop is idempotent.
type Session struct {
	dialTransport func() live.Transport
	input         AudioInput
	output        AudioOutput

	model             string
	voiceName         string
	systemInstruction string

	history    *conversationLog
	transcript *turnTranscript
	silence    *silenceMonitor
	playback   *playbackScheduler
	quiz       *quizMachine

	mu sync.Mutex
	// generation invalidates async completions from superseded cycles;
	// it is bumped on every start and stop.
	generation int
	active     bool
	stopping   bool
	capturing  bool
	status     Status
	emotion    Emotion
	listening  bool
	speaking   bool
	errMessage string
	conn       live.Transport

	closeOnce sync.Once

	onUpdate func()
	onError  func(err error)
}

func New(opts ...Option) *Session {
	s := &Session{
		model:             defaultModel,
		voiceName:         defaultVoiceName,
		systemInstruction: defaultSystemInstruction,
		status:            StatusIdle,
		emotion:           EmotionNeutral,
		history:           newConversationLog(),
		transcript:        &turnTranscript{},
		onUpdate:          func() {},
		onError:           func(error) {},
	}
	s.dialTransport = func() live.Transport { return gemini.NewClient() }

	for _, opt := range opts {
		opt(s)
	}

	s.silence = newSilenceMonitor(s.Stop)
	s.playback = newPlaybackScheduler(s.output, s.playbackFailed)
	s.quiz = newQuizMachine(
		func(summary string) { s.history.Append(SenderSystem, summary, nil) },
		s.notify,
	)
	return s
}

// Start opens the microphone, connects the transport and begins the
// listening loop. A no-op while a session is already active. Any
// failure sets status ERROR and tears the session fully down.
func (s *Session) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "start session")
	defer span.End()

	s.mu.Lock()
	if s.active || s.stopping {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	generation := s.generation
	s.status = StatusListening
	s.listening = true
	s.speaking = false
	s.emotion = EmotionNeutral
	s.errMessage = ""
	s.mu.Unlock()

	s.transcript.Clear()
	s.playback.Interrupt()
	s.notify()

	if s.input == nil {
		return s.failStart(ctx, fmt.Errorf("%w: no input client configured", ErrDevice))
	}
	if err := s.input.StartCapture(ctx, func(frames []float32) {
		s.handleInputAudio(generation, frames)
	}); err != nil {
		return s.failStart(ctx, fmt.Errorf("%w: failed to open capture stream: %v", ErrDevice, err))
	}
	s.mu.Lock()
	if s.generation != generation {
		// Torn down while the capture stream was opening.
		s.mu.Unlock()
		if err := s.input.StopCapture(); err != nil {
			log.Printf("Failed to stop capture stream: %v", err)
		}
		return nil
	}
	s.capturing = true
	s.mu.Unlock()

	conn := s.dialTransport()
	err := conn.Connect(ctx, live.SessionConfig{
		Model:               s.model,
		SystemInstruction:   s.systemInstruction,
		VoiceName:           s.voiceName,
		InputTranscription:  true,
		OutputTranscription: true,
		SearchGrounding:     true,
		Declarations:        toolDeclarations(),
	}, live.Callbacks{
		OnEvent: func(event live.Event) { s.handleServerEvent(generation, event) },
		OnError: func(err error) {
			s.fail(generation, fmt.Errorf("%w: %v", ErrConnection, err))
		},
		OnClose: func() {
			if s.isCurrent(generation) {
				s.Stop()
			}
		},
	})
	if err != nil {
		conn.Close()
		return s.failStart(ctx, fmt.Errorf("%w: %v", ErrConnection, err))
	}

	s.mu.Lock()
	if s.generation != generation {
		// Torn down while connecting.
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.active = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// Stop releases everything the session acquired. It is idempotent and
// safe to call re-entrantly, including from callbacks fired during an
// earlier Stop. Release failures are logged, never propagated.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		return
	}
	s.stopping = true
	s.generation++
	conn := s.conn
	s.conn = nil
	wasCapturing := s.capturing
	s.capturing = false
	s.active = false
	s.listening = false
	s.speaking = false
	s.emotion = EmotionNeutral
	if s.errMessage != "" {
		s.status = StatusError
	} else {
		s.status = StatusIdle
	}
	s.mu.Unlock()

	s.silence.Cancel()
	s.playback.Stop()

	if wasCapturing && s.input != nil {
		if err := s.input.StopCapture(); err != nil {
			log.Printf("Failed to stop capture stream: %v", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			log.Printf("Failed to close live connection: %v", err)
		}
	}

	s.transcript.Flush(s.history, false)
	s.quiz.End("Quiz interrupted.")

	s.mu.Lock()
	s.stopping = false
	s.mu.Unlock()

	s.notify()
}

// Close permanently releases the configured device clients. The
// session cannot be started again afterwards.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.Stop()
		if s.input != nil {
			if err := s.input.Close(); err != nil {
				log.Printf("Failed to close audio input: %v", err)
			}
		}
		if s.output != nil {
			if err := s.output.Close(); err != nil {
				log.Printf("Failed to close audio output: %v", err)
			}
		}
	})
}

// SubmitAnswer grades the current quiz question.
func (s *Session) SubmitAnswer(selected int) {
	s.quiz.SubmitAnswer(selected)
	s.notify()
}

// EndQuiz lets the user quit the running quiz.
func (s *Session) EndQuiz() {
	s.quiz.End("")
	s.notify()
}

// DismissError clears the user-visible error slot.
func (s *Session) DismissError() {
	s.mu.Lock()
	s.errMessage = ""
	if !s.active && s.status == StatusError {
		s.status = StatusIdle
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) isCurrent(generation int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == generation
}

func (s *Session) handleInputAudio(generation int, frames []float32) {
	if !s.isCurrent(generation) {
		return
	}

	s.mu.Lock()
	suppressed := s.speaking
	conn := s.conn
	s.mu.Unlock()

	s.silence.Observe(frames, suppressed || s.quiz.IsActive())

	if conn == nil {
		return
	}
	if err := conn.SendAudio(audio.EncodeFrames(frames)); err != nil {
		// The connection may simply have closed under us; teardown is
		// driven by the transport's close callback.
		log.Printf("Failed to send input audio: %v", err)
	}
}

func (s *Session) handleServerEvent(generation int, event live.Event) {
	if !s.isCurrent(generation) {
		return
	}

	switch e := event.(type) {
	case live.ToolCalls:
		s.handleToolCalls(e.Calls)

	case live.GroundingSources:
		s.transcript.AddSources(e.Sources)
		s.notify()

	case live.InputTranscription:
		s.transcript.AppendUser(e.Text)
		s.notify()

	case live.OutputTranscription:
		s.markSpeaking()
		s.transcript.AppendModel(e.Text)
		s.notify()

	case live.Interrupted:
		s.playback.Interrupt()
		s.notify()

	case live.AudioChunk:
		s.markSpeaking()
		s.playback.Schedule(e.Audio)
		s.notify()

	case live.TurnComplete:
		s.finishTurn()
	}
}

func (s *Session) handleToolCalls(calls []live.FunctionCall) {
	responses := make([]live.FunctionResponse, 0, len(calls))
	for _, call := range calls {
		invocation, err := decodeToolCall(call)
		if err != nil {
			log.Printf("Ignoring tool call %q: %v", call.Name, err)
		}

		switch invocation := invocation.(type) {
		case setEmotionCall:
			s.mu.Lock()
			s.emotion = invocation.emotion
			s.mu.Unlock()
		case startQuizCall:
			s.quiz.Start(invocation.questions)
		case endQuizCall:
			s.quiz.End("")
		}

		responses = append(responses, live.FunctionResponse{
			ID:       call.ID,
			Name:     call.Name,
			Response: map[string]any{"result": "ok"},
		})
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn != nil && len(responses) > 0 {
		if err := conn.SendToolResponse(responses); err != nil {
			log.Printf("Failed to acknowledge tool calls: %v", err)
		}
	}

	s.notify()
}

func (s *Session) markSpeaking() {
	s.mu.Lock()
	s.speaking = true
	s.listening = false
	s.status = StatusSpeaking
	s.mu.Unlock()
}

// finishTurn flushes the completed exchange into permanent history
// (skipped while a quiz runs) and resets per-turn presentation state.
func (s *Session) finishTurn() {
	s.transcript.Flush(s.history, s.quiz.IsActive())

	s.mu.Lock()
	s.speaking = false
	s.listening = true
	s.emotion = EmotionNeutral
	s.status = StatusListening
	s.mu.Unlock()

	s.notify()
}

func (s *Session) playbackFailed(err error) {
	s.mu.Lock()
	generation := s.generation
	active := s.active
	s.mu.Unlock()
	if !active {
		return
	}
	s.fail(generation, err)
}

// fail marks the current cycle failed and tears it down. Stale
// generations abort silently.
func (s *Session) fail(generation int, err error) {
	if !s.isCurrent(generation) {
		return
	}

	s.mu.Lock()
	s.errMessage = err.Error()
	s.status = StatusError
	s.mu.Unlock()

	logger.Error("Session failed", "error", err)
	s.onError(err)
	s.Stop()
}

func (s *Session) failStart(ctx context.Context, err error) error {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	s.mu.Lock()
	s.errMessage = err.Error()
	s.status = StatusError
	s.mu.Unlock()

	s.onError(err)
	s.Stop()
	return err
}

func (s *Session) notify() {
	s.onUpdate()
}
