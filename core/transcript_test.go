package session

import (
	"testing"

	"github.com/maahirlabs/tutor-core/core/live"
)

func TestTranscriptAccumulatesInArrivalOrder(t *testing.T) {
	transcript := &turnTranscript{}

	transcript.AppendUser("what ")
	transcript.AppendModel("The answer ")
	transcript.AppendUser("is gravity")
	transcript.AppendModel("is a force")

	user, model := transcript.Live()
	if user != "what is gravity" {
		t.Fatalf("expected concatenated user transcript, got %q", user)
	}
	if model != "The answer is a force" {
		t.Fatalf("expected concatenated model transcript, got %q", model)
	}
}

func TestTranscriptFlushAppendsOneMessagePerSide(t *testing.T) {
	history := newConversationLog()
	transcript := &turnTranscript{}

	transcript.AppendUser("  question  ")
	transcript.AppendModel("answer")
	transcript.AddSources([]live.Source{{URI: "https://example.com", Title: "Example"}})
	transcript.AddSources([]live.Source{{URI: "https://example.com", Title: "Example"}})

	transcript.Flush(history, false)

	messages := history.Snapshot()
	if len(messages) != 3 {
		t.Fatalf("expected greeting plus two flushed messages, got %d", len(messages))
	}
	if messages[1].Sender != SenderUser || messages[1].Text != "question" {
		t.Fatalf("expected trimmed user message, got %+v", messages[1])
	}
	if messages[2].Sender != SenderModel {
		t.Fatalf("expected model message last, got %+v", messages[2])
	}
	if len(messages[2].Sources) != 2 {
		t.Fatalf("expected duplicate sources preserved, got %+v", messages[2].Sources)
	}

	if user, model := transcript.Live(); user != "" || model != "" {
		t.Fatalf("expected buffers cleared after flush, got %q / %q", user, model)
	}
}

func TestTranscriptFlushSkipsHistoryDuringQuiz(t *testing.T) {
	history := newConversationLog()
	transcript := &turnTranscript{}

	transcript.AppendUser("quiz answer chatter")
	transcript.Flush(history, true)

	if messages := history.Snapshot(); len(messages) != 1 {
		t.Fatalf("expected only the greeting in history, got %d messages", len(messages))
	}
	if user, _ := transcript.Live(); user != "" {
		t.Fatalf("expected buffers cleared even when history is skipped, got %q", user)
	}
}

func TestTranscriptFlushSkipsEmptyBuffers(t *testing.T) {
	history := newConversationLog()
	transcript := &turnTranscript{}

	transcript.AppendUser("   ")
	transcript.Flush(history, false)

	if messages := history.Snapshot(); len(messages) != 1 {
		t.Fatalf("expected whitespace-only transcript to be dropped, got %d messages", len(messages))
	}
}
