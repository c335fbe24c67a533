package study

import (
	"context"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

// Store interfaces are satisfied by the gorm repositories; tests substitute
// in-memory fakes.

type DocumentStore interface {
	Create(doc *model.Document) error
	GetByID(id string) (*model.Document, error)
	List() ([]model.Document, error)
	DeleteCascade(id string) error
}

type QuizStore interface {
	Create(quiz *model.Quiz) error
	GetByID(id string) (*model.Quiz, error)
}

type AttemptStore interface {
	Create(attempt *model.QuizAttempt) error
	ListRecent(limit int) ([]model.QuizAttempt, error)
}

type ChatStore interface {
	CreateSession(session *model.ChatSession) error
	GetSession(id string) (*model.ChatSession, error)
	ListSessions() ([]model.ChatSession, error)
	TouchSession(id, lastMessage string) error
	AppendMessage(message *model.ChatMessage) error
	ListMessages(sessionID string, limit int) ([]model.ChatMessage, error)
	ListRecentMessages(sessionID string, limit int) ([]model.ChatMessage, error)
	CountMessages(sessionID string) (int64, error)
	DeleteSession(id string) error
}

// Completer is the LLM gateway capability the services depend on. Production
// wires *ai.Client; tests wire a deterministic fake.
type Completer interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

// EventPublisher pushes audit events; best-effort, never on the request's
// critical path.
type EventPublisher interface {
	Publish(ctx context.Context, event model.StudyEvent) error
}

// HistoryCache is the chat history read cache (redis in production).
type HistoryCache interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}
