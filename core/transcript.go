package session

import (
	"strings"
	"sync"

	"github.com/maahirlabs/tutor-core/core/live"
)

// turnTranscript accumulates both sides of one conversational turn.
// Fragments are appended in arrival order; citation sources arrive on
// a side channel independent of transcript fragments. Everything here
// is turn-scoped and cleared on flush.
type turnTranscript struct {
	mu      sync.Mutex
	user    string
	model   string
	sources []live.Source
}

func (t *turnTranscript) AppendUser(fragment string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.user += fragment
}

func (t *turnTranscript) AppendModel(fragment string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.model += fragment
}

func (t *turnTranscript) AddSources(sources []live.Source) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sources = append(t.sources, sources...)
}

// Live returns the in-progress transcripts for presentation.
func (t *turnTranscript) Live() (user, model string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.user, t.model
}

// Clear drops the accumulated turn without touching history.
func (t *turnTranscript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.user = ""
	t.model = ""
	t.sources = nil
}

// Flush drains the accumulated turn into permanent history. At most
// one user and one model message are appended; the model message
// carries the citation snapshot. Buffers are always cleared, but the
// history append is skipped while a quiz is running.
func (t *turnTranscript) Flush(history *conversationLog, skipHistory bool) {
	t.mu.Lock()
	user := strings.TrimSpace(t.user)
	model := strings.TrimSpace(t.model)
	sources := t.sources
	t.user = ""
	t.model = ""
	t.sources = nil
	t.mu.Unlock()

	if skipHistory {
		return
	}

	if user != "" {
		history.Append(SenderUser, user, nil)
	}
	if model != "" {
		history.Append(SenderModel, model, sources)
	}
}
