package study

import (
	"context"
	"errors"
	"sort"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

// In-memory doubles for the store interfaces. They keep just enough
// behavior for the services to run deterministic scenarios.

type stubDocStore struct {
	docs map[string]model.Document
}

func newStubDocStore(docs ...model.Document) *stubDocStore {
	s := &stubDocStore{docs: make(map[string]model.Document)}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *stubDocStore) Create(doc *model.Document) error {
	s.docs[doc.ID] = *doc
	return nil
}

func (s *stubDocStore) GetByID(id string) (*model.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (s *stubDocStore) List() ([]model.Document, error) {
	out := make([]model.Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.Before(out[j].UploadedAt) })
	return out, nil
}

func (s *stubDocStore) DeleteCascade(id string) error {
	delete(s.docs, id)
	return nil
}

type stubQuizStore struct {
	quizzes map[string]model.Quiz
}

func newStubQuizStore() *stubQuizStore {
	return &stubQuizStore{quizzes: make(map[string]model.Quiz)}
}

func (s *stubQuizStore) Create(quiz *model.Quiz) error {
	s.quizzes[quiz.ID] = *quiz
	return nil
}

func (s *stubQuizStore) GetByID(id string) (*model.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, nil
	}
	return &quiz, nil
}

type stubAttemptStore struct {
	attempts []model.QuizAttempt
}

func (s *stubAttemptStore) Create(attempt *model.QuizAttempt) error {
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (s *stubAttemptStore) ListRecent(limit int) ([]model.QuizAttempt, error) {
	out := make([]model.QuizAttempt, len(s.attempts))
	copy(out, s.attempts)
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubChatStore struct {
	sessions map[string]model.ChatSession
	messages map[string][]model.ChatMessage
	nextID   uint
}

func newStubChatStore() *stubChatStore {
	return &stubChatStore{
		sessions: make(map[string]model.ChatSession),
		messages: make(map[string][]model.ChatMessage),
	}
}

func (s *stubChatStore) CreateSession(session *model.ChatSession) error {
	s.sessions[session.ID] = *session
	return nil
}

func (s *stubChatStore) GetSession(id string) (*model.ChatSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *stubChatStore) ListSessions() ([]model.ChatSession, error) {
	out := make([]model.ChatSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *stubChatStore) TouchSession(id, lastMessage string) error {
	session, ok := s.sessions[id]
	if !ok {
		return errors.New("session missing")
	}
	session.LastMessage = lastMessage
	s.sessions[id] = session
	return nil
}

func (s *stubChatStore) AppendMessage(message *model.ChatMessage) error {
	s.nextID++
	message.ID = s.nextID
	s.messages[message.SessionID] = append(s.messages[message.SessionID], *message)
	return nil
}

func (s *stubChatStore) ListMessages(sessionID string, limit int) ([]model.ChatMessage, error) {
	msgs := s.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *stubChatStore) ListRecentMessages(sessionID string, limit int) ([]model.ChatMessage, error) {
	msgs := s.messages[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *stubChatStore) CountMessages(sessionID string) (int64, error) {
	return int64(len(s.messages[sessionID])), nil
}

func (s *stubChatStore) DeleteSession(id string) error {
	delete(s.sessions, id)
	delete(s.messages, id)
	return nil
}

// stubCompleter plays back canned responses, or fails.
type stubCompleter struct {
	response string
	err      error
	prompts  [][]ai.ChatMessage
}

func (s *stubCompleter) Complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	s.prompts = append(s.prompts, messages)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type recordedEvent struct {
	Kind      string
	SubjectID string
}

type stubEvents struct {
	published []recordedEvent
	err       error
}

func (s *stubEvents) Publish(ctx context.Context, event model.StudyEvent) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, recordedEvent{Kind: event.Kind, SubjectID: event.SubjectID})
	return nil
}

type stubHistoryCache struct {
	histories map[string][]model.ChatMessage
	dirty     map[string]bool
	deletes   int
}

func newStubHistoryCache() *stubHistoryCache {
	return &stubHistoryCache{
		histories: make(map[string][]model.ChatMessage),
		dirty:     make(map[string]bool),
	}
}

func (s *stubHistoryCache) GetHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, bool, error) {
	msgs, ok := s.histories[sessionID]
	return msgs, ok, nil
}

func (s *stubHistoryCache) SetHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error {
	s.histories[sessionID] = messages
	return nil
}

func (s *stubHistoryCache) DeleteHistory(ctx context.Context, sessionID string) error {
	delete(s.histories, sessionID)
	s.deletes++
	return nil
}

func (s *stubHistoryCache) MarkDirty(ctx context.Context, sessionID string) error {
	s.dirty[sessionID] = true
	return nil
}

func (s *stubHistoryCache) IsDirty(ctx context.Context, sessionID string) (bool, error) {
	return s.dirty[sessionID], nil
}
