package domain

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Stage identifies one phase of the screening flow.
type Stage string

const (
	StageGreeting            Stage = "greeting"
	StageDataCollection      Stage = "data_collection"
	StageTechnicalAssessment Stage = "technical_assessment"
	StageCompletion          Stage = "completion"
)

// Conversation roles.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// ContextWindow is how many trailing conversation entries are rendered when
// building model context. Older entries stay in the log but are never read.
const ContextWindow = 10

var ErrSessionNotFound = errors.New("session not found")

// ConversationEntry is one line of the append-only conversation log.
type ConversationEntry struct {
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionState is the per-session mutable record backing the screening flow.
// It lives in memory for the duration of one browser session and every field
// returns to its zero value on reset.
type SessionState struct {
	ID            string              `json:"id"`
	Stage         Stage               `json:"stage"`
	Candidate     *CandidateProfile   `json:"candidate,omitempty"`
	History       []ConversationEntry `json:"history"`
	TechQuestions map[string][]string `json:"tech_questions"`
	// TechCursor marks the next technology in Candidate.TechStack awaiting
	// assessment. It only ever moves forward.
	TechCursor int       `json:"tech_cursor"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// mu serializes all access to the session. The session middleware holds
	// it for the duration of a request, so two requests replaying the same
	// cookie never mutate the state concurrently.
	mu sync.Mutex
}

func NewSessionState(id string) *SessionState {
	now := time.Now()
	return &SessionState{
		ID:            id,
		Stage:         StageGreeting,
		TechQuestions: make(map[string][]string),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Lock takes exclusive ownership of the session for one request.
func (s *SessionState) Lock() {
	s.mu.Lock()
}

// Unlock releases ownership taken by Lock.
func (s *SessionState) Unlock() {
	s.mu.Unlock()
}

// TryLock takes ownership only when no request is using the session. The
// repository janitor uses it so a session mid-request is never inspected.
func (s *SessionState) TryLock() bool {
	return s.mu.TryLock()
}

// Record appends an entry with the current timestamp to the conversation log.
func (s *SessionState) Record(role, message string) {
	now := time.Now()
	s.History = append(s.History, ConversationEntry{
		Role:      role,
		Message:   message,
		Timestamp: now,
	})
	s.UpdatedAt = now
}

// BuildContext renders the last ContextWindow entries as "ROLE: message"
// lines in chronological order, for use as LLM context.
func (s *SessionState) BuildContext() string {
	start := len(s.History) - ContextWindow
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, entry := range s.History[start:] {
		b.WriteString(strings.ToUpper(entry.Role))
		b.WriteString(": ")
		b.WriteString(entry.Message)
		b.WriteString("\n")
	}
	return b.String()
}

// CurrentTechnology returns the technology at the cursor, or false when the
// stack is exhausted or no profile has been collected yet.
func (s *SessionState) CurrentTechnology() (string, bool) {
	if s.Candidate == nil || s.TechCursor >= len(s.Candidate.TechStack) {
		return "", false
	}
	return s.Candidate.TechStack[s.TechCursor], true
}

// Reset clears every field back to its initial empty value and returns the
// session to the greeting stage.
func (s *SessionState) Reset() {
	s.Stage = StageGreeting
	s.Candidate = nil
	s.History = nil
	s.TechQuestions = make(map[string][]string)
	s.TechCursor = 0
	s.UpdatedAt = time.Now()
}

type SessionRepository interface {
	Get(ctx context.Context, id string) (*SessionState, error)
	Save(ctx context.Context, session *SessionState) error
	Delete(ctx context.Context, id string) error
}
