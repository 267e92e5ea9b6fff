package session

import "strconv"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
)

// Instruction kinds recognized on the wire. Anything else is ignored.
const (
	KindGuideline = "guideline"
	KindTopic     = "topic"
	KindRepeat    = "repeat"
)

// Turn is a single entry in the conversation history. Turns are append-only
// and never mutated after creation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Instructions carries the client-set parameters that shape future turns.
type Instructions struct {
	Guideline string
	Topic     string
	Repeat    int
}

// Session holds the conversation state for one connection: the ordered turn
// history and the active instructions. It is owned by the connection's
// goroutine and must not be shared across connections.
type Session struct {
	instructions Instructions
	history      []Turn
}

// New returns a fresh session with default instructions.
func New() *Session {
	return &Session{
		instructions: Instructions{Repeat: 1},
	}
}

// Apply updates the instruction named by kind and reports whether the kind
// was recognized. Unrecognized kinds leave the session untouched. The repeat
// value is coerced to a positive integer; text that does not parse as one
// keeps the previous value.
func (s *Session) Apply(kind, text string) bool {
	switch kind {
	case KindGuideline:
		s.instructions.Guideline = text
	case KindTopic:
		s.instructions.Topic = text
	case KindRepeat:
		if n, err := strconv.Atoi(text); err == nil && n > 0 {
			s.instructions.Repeat = n
		}
	default:
		return false
	}
	return true
}

// Append adds a turn to the history.
func (s *Session) Append(role Role, content string) {
	s.history = append(s.history, Turn{Role: role, Content: content})
}

// History returns a copy of the turn history in arrival order.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Instructions returns a snapshot of the active instructions.
func (s *Session) Instructions() Instructions {
	return s.instructions
}
