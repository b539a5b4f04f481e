package session

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/maahirlabs/tutor-core/core/live"
)

// greetingText is the system message every conversation opens with.
const greetingText = "નમસ્તે! હું માહિર છું, તમારો AI અભ્યાસ મિત્ર. માઇક દબાવો અને તમારો પ્રશ્ન પૂછો."

// Message is one permanent conversation record. Messages are never
// mutated after insertion; insertion order is display order.
type Message struct {
	ID     uuid.UUID
	Sender Sender
	Text   string
	// Sources carries the citation snapshot for model messages.
	Sources []live.Source
}

// conversationLog is the append-only permanent history. It survives
// session stop/start cycles but not the process.
type conversationLog struct {
	mu       sync.Mutex
	messages []Message
}

func newConversationLog() *conversationLog {
	history := &conversationLog{}
	history.Append(SenderSystem, greetingText, nil)
	return history
}

func (l *conversationLog) Append(sender Sender, text string, sources []live.Source) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, Message{
		ID:      uuid.New(),
		Sender:  sender,
		Text:    text,
		Sources: sources,
	})
}

// Snapshot returns a deep copy so observers cannot mutate or race the
// live log.
func (l *conversationLog) Snapshot() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	messages := make([]Message, 0, len(l.messages))
	if err := copier.CopyWithOption(&messages, l.messages, copier.Option{DeepCopy: true}); err != nil {
		log.Printf("Failed to copy conversation history: %v", err)
		return append(messages, l.messages...)
	}
	return messages
}
