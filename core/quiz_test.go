package session

import (
	"sync"
	"testing"
	"time"
)

func quizQuestions() []QuizQuestion {
	return []QuizQuestion{
		{QuestionText: "પ્રશ્ન 1", Options: []string{"અ", "બ", "ક", "ડ"}, CorrectAnswerIndex: 1},
		{QuestionText: "પ્રશ્ન 2", Options: []string{"અ", "બ", "ક", "ડ"}, CorrectAnswerIndex: 0},
		{QuestionText: "પ્રશ્ન 3", Options: []string{"અ", "બ", "ક", "ડ"}, CorrectAnswerIndex: 2},
	}
}

type quizRecorder struct {
	mu        sync.Mutex
	summaries []string
}

func (r *quizRecorder) record(summary string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
}

func (r *quizRecorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.summaries...)
}

func awaitQuizIndex(t *testing.T, machine *quizMachine, index int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for machine.View().Index != index || machine.View().Feedback != nil {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for question %d, view %+v", index, machine.View())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestQuizScenarioThroughWrongFinalAnswer(t *testing.T) {
	recorder := &quizRecorder{}
	machine := newQuizMachine(recorder.record, nil)
	machine.feedbackDelay = 20 * time.Millisecond

	machine.Start(quizQuestions())

	view := machine.View()
	if !view.Active || view.Index != 0 || view.Score != 0 || view.Total != 3 {
		t.Fatalf("unexpected initial quiz view: %+v", view)
	}

	// Correct answer on question 1.
	machine.SubmitAnswer(1)
	view = machine.View()
	if view.Score != 1 {
		t.Fatalf("expected score 1 after a correct answer, got %d", view.Score)
	}
	if view.Feedback == nil || !view.Feedback.Correct || view.Feedback.Message != correctAnswerFeedback {
		t.Fatalf("unexpected feedback: %+v", view.Feedback)
	}

	awaitQuizIndex(t, machine, 1)

	// Wrong answer on question 2 reveals the correct option.
	machine.SubmitAnswer(3)
	view = machine.View()
	if view.Score != 1 {
		t.Fatalf("expected score unchanged after a wrong answer, got %d", view.Score)
	}
	if view.Feedback == nil || view.Feedback.Correct || view.Feedback.Message != wrongAnswerFeedback("અ") {
		t.Fatalf("unexpected feedback: %+v", view.Feedback)
	}

	awaitQuizIndex(t, machine, 2)

	// Wrong answer on the last question ends the quiz with the summary.
	machine.SubmitAnswer(0)
	deadline := time.Now().Add(2 * time.Second)
	for machine.IsActive() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for quiz to end")
		}
		time.Sleep(5 * time.Millisecond)
	}

	summaries := recorder.recorded()
	if len(summaries) != 1 || summaries[0] != "Quiz finished! Your final score: 1/3" {
		t.Fatalf("unexpected summaries: %v", summaries)
	}
}

func TestQuizRejectsDoubleSubmission(t *testing.T) {
	machine := newQuizMachine(nil, nil)
	machine.feedbackDelay = time.Minute

	machine.Start(quizQuestions())
	machine.SubmitAnswer(1)
	machine.SubmitAnswer(1)

	if view := machine.View(); view.Score != 1 {
		t.Fatalf("expected exactly one graded submission, got score %d", view.Score)
	}
}

func TestQuizEndUsesCustomMessage(t *testing.T) {
	recorder := &quizRecorder{}
	machine := newQuizMachine(recorder.record, nil)

	machine.Start(quizQuestions())
	machine.End("Quiz interrupted.")

	if machine.IsActive() {
		t.Fatal("expected quiz inactive after End")
	}
	if summaries := recorder.recorded(); len(summaries) != 1 || summaries[0] != "Quiz interrupted." {
		t.Fatalf("unexpected summaries: %v", summaries)
	}

	// Ending again is a no-op.
	machine.End("again")
	if summaries := recorder.recorded(); len(summaries) != 1 {
		t.Fatalf("expected End while inactive to be a no-op, got %v", summaries)
	}
}

func TestQuizStartReplacesPriorState(t *testing.T) {
	machine := newQuizMachine(nil, nil)
	machine.feedbackDelay = time.Minute

	machine.Start(quizQuestions())
	machine.SubmitAnswer(1)

	replacement := quizQuestions()[:1]
	machine.Start(replacement)

	view := machine.View()
	if view.Index != 0 || view.Score != 0 || view.Feedback != nil || view.Total != 1 {
		t.Fatalf("expected wholesale reset on restart, got %+v", view)
	}
}

func TestQuizStartIgnoresEmptyQuestionList(t *testing.T) {
	machine := newQuizMachine(nil, nil)
	machine.Start(nil)
	if machine.IsActive() {
		t.Fatal("expected empty quiz to be ignored")
	}
}
