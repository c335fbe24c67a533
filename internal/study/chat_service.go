package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/logger"
)

const chatSystemPrompt = "You are a knowledgeable and patient teacher. Provide clear, educational responses that help students learn."

const gatewayApology = "I'm having trouble reaching the AI service right now. Please try your question again in a moment."

// ChatResult is what the tutor returns for one exchange.
type ChatResult struct {
	SessionID string           `json:"chat_id"`
	Reply     string           `json:"message"`
	Citations []model.Citation `json:"citations"`
}

// SessionSummary is one row of the chat history listing.
type SessionSummary struct {
	SessionID    string    `json:"chat_id"`
	LastMessage  string    `json:"last_message"`
	MessageCount int64     `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ChatService struct {
	chats       ChatStore
	docs        DocumentStore
	completer   Completer
	cache       HistoryCache
	events      EventPublisher
	log         *logger.Logger
	topK        int
	snippetLen  int
	maxMessages int
}

func NewChatService(
	chats ChatStore,
	docs DocumentStore,
	completer Completer,
	cache HistoryCache,
	events EventPublisher,
	log *logger.Logger,
	topK int,
	snippetLen int,
	maxMessages int,
) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	if snippetLen <= 0 {
		snippetLen = 200
	}
	if maxMessages <= 0 {
		maxMessages = 20
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ChatService{
		chats:       chats,
		docs:        docs,
		completer:   completer,
		cache:       cache,
		events:      events,
		log:         log,
		topK:        topK,
		snippetLen:  snippetLen,
		maxMessages: maxMessages,
	}
}

// Ask runs one tutor exchange: resolve the session, retrieve citations from
// the bound document, call the model with recent history, persist both
// messages. A gateway failure degrades to a fixed apology and the exchange
// is still recorded.
func (s *ChatService) Ask(ctx context.Context, sessionID, documentID, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.resolveSession(sessionID, documentID)
	if err != nil {
		return nil, err
	}
	if documentID == "" {
		documentID = session.DocumentID
	}

	citations, contextBlock, err := s.retrieve(message, documentID)
	if err != nil {
		return nil, err
	}

	history, err := s.chats.ListRecentMessages(session.ID, s.maxMessages)
	if err != nil {
		return nil, err
	}

	reply, ok := s.complete(ctx, history, contextBlock, message)
	if !ok {
		citations = nil
	}

	userMsg := &model.ChatMessage{
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	}
	if err := s.chats.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	assistantMsg := &model.ChatMessage{
		SessionID: session.ID,
		Role:      model.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	assistantMsg.SetCitations(citations)
	if err := s.chats.AppendMessage(assistantMsg); err != nil {
		return nil, err
	}

	if err := s.chats.TouchSession(session.ID, message); err != nil {
		return nil, err
	}
	s.invalidateHistory(ctx, session.ID)

	s.recordEvent(ctx, model.EventChatExchanged, session.ID, truncateRunes(message, 120))

	return &ChatResult{
		SessionID: session.ID,
		Reply:     reply,
		Citations: citations,
	}, nil
}

func (s *ChatService) resolveSession(sessionID, documentID string) (*model.ChatSession, error) {
	if sessionID != "" {
		session, err := s.chats.GetSession(sessionID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrChatNotFound
		}
		return session, nil
	}

	now := time.Now()
	session := &model.ChatSession{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.chats.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// retrieve finds cited excerpts in the target document and renders them as
// the prompt context block. No document means no citations.
func (s *ChatService) retrieve(message, documentID string) ([]model.Citation, string, error) {
	if documentID == "" {
		return nil, "", nil
	}
	doc, err := s.docs.GetByID(documentID)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", ErrDocumentNotFound
	}

	citations := FindCitations(message, doc.Pages(), s.topK, s.snippetLen)
	if len(citations) == 0 {
		return nil, "", nil
	}

	parts := make([]string, len(citations))
	for i, c := range citations {
		parts[i] = fmt.Sprintf("[Page %d]: %s", c.Page, c.Snippet)
	}
	return citations, strings.Join(parts, "\n\n"), nil
}

func (s *ChatService) complete(ctx context.Context, history []model.ChatMessage, contextBlock, message string) (string, bool) {
	var prompt string
	if contextBlock != "" {
		prompt = fmt.Sprintf(`You are a helpful teacher. Answer the student's question based on these excerpts from their coursebook:

%s

Student's question: %s

Provide a clear, educational response. If the excerpts don't fully answer the question, use your knowledge but acknowledge this.`, contextBlock, message)
	} else {
		prompt = fmt.Sprintf(`You are a helpful teacher. Answer this student's question clearly and educationally:

Question: %s

Provide a thorough, helpful response.`, message)
	}

	messages := make([]ai.ChatMessage, 0, len(history)+2)
	messages = append(messages, ai.ChatMessage{Role: "system", Content: chatSystemPrompt})
	for _, m := range history {
		messages = append(messages, ai.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ai.ChatMessage{Role: "user", Content: prompt})

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.log.Warn("chat completion failed, sending apology", "error", err)
		return gatewayApology, false
	}
	return strings.TrimSpace(reply), true
}

// Sessions lists all chat sessions, most recently updated first.
func (s *ChatService) Sessions() ([]SessionSummary, error) {
	sessions, err := s.chats.ListSessions()
	if err != nil {
		return nil, err
	}
	summaries := make([]SessionSummary, len(sessions))
	for i, session := range sessions {
		count, err := s.chats.CountMessages(session.ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = SessionSummary{
			SessionID:    session.ID,
			LastMessage:  session.LastMessage,
			MessageCount: count,
			UpdatedAt:    session.UpdatedAt,
		}
	}
	return summaries, nil
}

// Messages returns a session's full transcript, cache first. A fresh dirty
// marker bypasses the cache so an in-flight write is never read stale.
func (s *ChatService) Messages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	session, err := s.chats.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrChatNotFound
	}

	if s.cache != nil {
		dirty, err := s.cache.IsDirty(ctx, sessionID)
		if err != nil {
			s.log.Warn("check history dirty marker failed", "session_id", sessionID, "error", err)
		} else if !dirty {
			if cached, ok, err := s.cache.GetHistory(ctx, sessionID); err != nil {
				s.log.Warn("read history cache failed", "session_id", sessionID, "error", err)
			} else if ok {
				return cached, nil
			}
		}
	}

	messages, err := s.chats.ListMessages(sessionID, 0)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetHistory(ctx, sessionID, messages); err != nil {
			s.log.Warn("write history cache failed", "session_id", sessionID, "error", err)
		}
	}
	return messages, nil
}

// DeleteSession removes a session with its messages and cached history.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.chats.GetSession(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrChatNotFound
	}

	if err := s.chats.DeleteSession(sessionID); err != nil {
		return err
	}
	s.invalidateHistory(ctx, sessionID)

	s.recordEvent(ctx, model.EventChatDeleted, sessionID, session.LastMessage)
	return nil
}

func (s *ChatService) invalidateHistory(ctx context.Context, sessionID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.MarkDirty(ctx, sessionID); err != nil {
		s.log.Warn("mark history dirty failed", "session_id", sessionID, "error", err)
	}
	if err := s.cache.DeleteHistory(ctx, sessionID); err != nil {
		s.log.Warn("invalidate history cache failed", "session_id", sessionID, "error", err)
	}
}

func (s *ChatService) recordEvent(ctx context.Context, kind, subjectID, detail string) {
	if s.events == nil {
		return
	}
	event := model.StudyEvent{
		Kind:      kind,
		SubjectID: subjectID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("publish study event failed", "kind", kind, "error", err)
	}
}
