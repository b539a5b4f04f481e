package session

// Snapshot is a point-in-time copy of everything the presentation
// layer renders. It shares no memory with the live session.
type Snapshot struct {
	Active    bool
	Status    Status
	Emotion   Emotion
	Listening bool
	Speaking  bool

	Messages        []Message
	UserTranscript  string
	ModelTranscript string

	Quiz QuizView

	ErrMessage string
}

func (s *Session) Snapshot() Snapshot {
	user, model := s.transcript.Live()

	s.mu.Lock()
	snapshot := Snapshot{
		Active:          s.active,
		Status:          s.status,
		Emotion:         s.emotion,
		Listening:       s.listening,
		Speaking:        s.speaking,
		UserTranscript:  user,
		ModelTranscript: model,
		ErrMessage:      s.errMessage,
	}
	s.mu.Unlock()

	snapshot.Messages = s.history.Snapshot()
	snapshot.Quiz = s.quiz.View()
	return snapshot
}
