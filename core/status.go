package session

import "strings"

// Status is the coarse presentation state of the session.
type Status string

const (
	StatusIdle      Status = "IDLE"
	StatusListening Status = "LISTENING"
	StatusThinking  Status = "THINKING"
	StatusSpeaking  Status = "SPEAKING"
	StatusError     Status = "ERROR"
)

// Emotion is a purely presentational tone signal set by the model
// through the setEmotion tool. It has no behavioral effect.
type Emotion string

const (
	EmotionNeutral Emotion = "NEUTRAL"
	EmotionHappy   Emotion = "HAPPY"
	EmotionExcited Emotion = "EXCITED"
)

// parseEmotion validates a model-supplied emotion value. Unrecognized
// values are rejected rather than stored.
func parseEmotion(value string) (Emotion, bool) {
	switch Emotion(strings.ToUpper(strings.TrimSpace(value))) {
	case EmotionNeutral:
		return EmotionNeutral, true
	case EmotionHappy:
		return EmotionHappy, true
	case EmotionExcited:
		return EmotionExcited, true
	}
	return "", false
}

// Sender identifies who produced a history message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderModel  Sender = "model"
	SenderSystem Sender = "system"
)
