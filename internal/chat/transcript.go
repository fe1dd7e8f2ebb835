package chat

import (
	"context"
	"strings"
)

const (
	Greeting = "Hi! I'm Shreyash's AI assistant. Ask me anything about his skills or projects."
	Fallback = "Unable to reach server. Try again."
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Transcript is the widget's conversation. Only one request may be in flight.
type Transcript struct {
	greeting string
	messages []Message
	loading  bool
}

func NewTranscript(greeting string) *Transcript {
	if greeting == "" {
		greeting = Greeting
	}
	t := &Transcript{greeting: greeting}
	t.Reset()
	return t
}

// Reset drops everything but the greeting. A request in flight stays in
// flight: its reply still arrives through Complete.
func (t *Transcript) Reset() {
	t.messages = []Message{{Role: RoleAssistant, Content: t.greeting}}
}

// Begin records a user message and enters the loading state. It returns the
// trimmed text to send, or false when the input is blank or a request is
// already in flight.
func (t *Transcript) Begin(input string) (string, bool) {
	msg := strings.TrimSpace(input)
	if msg == "" || t.loading {
		return "", false
	}
	t.messages = append(t.messages, Message{Role: RoleUser, Content: msg})
	t.loading = true
	return msg, true
}

// Complete appends the assistant's answer, or the fallback when err is
// non-nil, and leaves the loading state.
func (t *Transcript) Complete(reply string, err error) Message {
	m := Message{Role: RoleAssistant, Content: CleanReply(reply)}
	if err != nil {
		m.Content = Fallback
	}
	t.messages = append(t.messages, m)
	t.loading = false
	return m
}

// Exchange runs Begin, Send and Complete synchronously.
func (t *Transcript) Exchange(ctx context.Context, s Sender, input string) (Message, bool) {
	msg, ok := t.Begin(input)
	if !ok {
		return Message{}, false
	}
	reply, err := s.Send(ctx, msg)
	return t.Complete(reply, err), true
}

func (t *Transcript) Loading() bool { return t.loading }

func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

// Last returns the most recent message.
func (t *Transcript) Last() Message {
	return t.messages[len(t.messages)-1]
}

// Ask sends a single message outside any transcript and returns the cleaned
// reply. Unlike Complete it reports failures instead of the fallback.
func Ask(ctx context.Context, s Sender, input string) (string, error) {
	msg := strings.TrimSpace(input)
	if msg == "" {
		return "", ErrEmptyMessage
	}
	reply, err := s.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	return CleanReply(reply), nil
}
