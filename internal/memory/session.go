package memory

import (
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
)

// Session is the conversation memory of one chat session. It is owned by
// the caller and is not safe for concurrent turns.
type Session struct {
	id        string
	createdAt time.Time
	messages  []*schema.Message
}

func NewSession() *Session {
	return &Session{
		id:        uuid.NewString(),
		createdAt: time.Now(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Add appends one exchange, user message first.
func (s *Session) Add(query, answer string) {
	s.messages = append(s.messages, schema.UserMessage(query), schema.AssistantMessage(answer, nil))
}

// Messages returns a copy of the history, oldest first.
func (s *Session) Messages() []*schema.Message {
	out := make([]*schema.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Len() int { return len(s.messages) }

// Clear drops the history. The session id is kept.
func (s *Session) Clear() {
	s.messages = nil
}

// Transcript renders the history one message per line.
func (s *Session) Transcript() string {
	var b strings.Builder
	for _, m := range s.messages {
		switch m.Role {
		case schema.User:
			b.WriteString("Human: ")
		default:
			b.WriteString("AI: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}
