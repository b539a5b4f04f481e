package session

import (
	"fmt"
	"sync"
	"time"
)

const quizFeedbackDelay = 2000 * time.Millisecond

const correctAnswerFeedback = "સાચો જવાબ!"

func wrongAnswerFeedback(correctOption string) string {
	return fmt.Sprintf("ખોટો જવાબ. સાચો જવાબ છે: %s", correctOption)
}

func quizSummary(score, total int) string {
	return fmt.Sprintf("Quiz finished! Your final score: %d/%d", score, total)
}

// QuizQuestion is one multiple-choice question issued by the model.
// Immutable once issued. The struct doubles as the wire schema for the
// startQuiz tool declaration.
type QuizQuestion struct {
	QuestionText       string   `json:"question_text" jsonschema:"description=The question text in Gujarati."`
	Options            []string `json:"options" jsonschema:"description=A list of 4 multiple-choice options in Gujarati."`
	CorrectAnswerIndex int      `json:"correct_answer_index" jsonschema:"description=The 0-based index of the correct answer in the options array."`
}

// QuizFeedback is the per-answer verdict shown until the next question.
type QuizFeedback struct {
	Message string
	Correct bool
}

// quizMachine is the interactive quiz sub-mode. While active, quiz
// answering is button driven: the silence monitor is bypassed and
// transcripts stay out of permanent history.
type quizMachine struct {
	mu sync.Mutex

	active    bool
	questions []QuizQuestion
	index     int
	score     int
	feedback  *QuizFeedback

	advance       *time.Timer
	feedbackDelay time.Duration

	// onEnded appends the summary system message to history.
	onEnded func(summary string)
	// onChanged fires after timer-driven transitions so observers see
	// question advances that no user action triggered.
	onChanged func()
}

func newQuizMachine(onEnded func(summary string), onChanged func()) *quizMachine {
	if onEnded == nil {
		onEnded = func(string) {}
	}
	if onChanged == nil {
		onChanged = func() {}
	}
	return &quizMachine{
		feedbackDelay: quizFeedbackDelay,
		onEnded:       onEnded,
		onChanged:     onChanged,
	}
}

func (m *quizMachine) IsActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Start replaces any prior quiz state wholesale.
func (m *quizMachine) Start(questions []QuizQuestion) {
	if len(questions) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelAdvanceLocked()
	m.active = true
	m.questions = questions
	m.index = 0
	m.score = 0
	m.feedback = nil
}

// SubmitAnswer grades the current question. Submissions while feedback
// is already showing are ignored, so each question is graded once.
func (m *quizMachine) SubmitAnswer(selected int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active || m.feedback != nil {
		return
	}

	question := m.questions[m.index]
	if selected < 0 || selected >= len(question.Options) {
		return
	}

	if selected == question.CorrectAnswerIndex {
		m.score++
		m.feedback = &QuizFeedback{Message: correctAnswerFeedback, Correct: true}
	} else {
		m.feedback = &QuizFeedback{
			Message: wrongAnswerFeedback(question.Options[question.CorrectAnswerIndex]),
		}
	}

	m.advance = time.AfterFunc(m.feedbackDelay, m.advanceQuestion)
}

func (m *quizMachine) advanceQuestion() {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}

	m.feedback = nil
	if m.index < len(m.questions)-1 {
		m.index++
		m.mu.Unlock()
		m.onChanged()
		return
	}

	summary := quizSummary(m.score, len(m.questions))
	m.resetLocked()
	m.mu.Unlock()

	m.onEnded(summary)
	m.onChanged()
}

// End terminates the quiz and records a system message: the given one,
// or the default summary when empty. A no-op while inactive.
func (m *quizMachine) End(message string) {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}

	if message == "" {
		message = quizSummary(m.score, len(m.questions))
	}
	m.resetLocked()
	m.mu.Unlock()

	m.onEnded(message)
}

func (m *quizMachine) resetLocked() {
	m.cancelAdvanceLocked()
	m.active = false
	m.questions = nil
	m.index = 0
	m.score = 0
	m.feedback = nil
}

func (m *quizMachine) cancelAdvanceLocked() {
	if m.advance != nil {
		m.advance.Stop()
		m.advance = nil
	}
}

// QuizView is a point-in-time copy of the quiz state for presentation.
type QuizView struct {
	Active   bool
	Question *QuizQuestion
	Index    int
	Total    int
	Score    int
	Feedback *QuizFeedback
}

func (m *quizMachine) View() QuizView {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := QuizView{
		Active: m.active,
		Index:  m.index,
		Total:  len(m.questions),
		Score:  m.score,
	}
	if m.active {
		question := m.questions[m.index]
		question.Options = append([]string(nil), question.Options...)
		view.Question = &question
	}
	if m.feedback != nil {
		feedback := *m.feedback
		view.Feedback = &feedback
	}
	return view
}
