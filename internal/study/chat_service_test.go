package study

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

type chatFixture struct {
	svc       *ChatService
	chats     *stubChatStore
	completer *stubCompleter
	cache     *stubHistoryCache
	events    *stubEvents
}

func newChatFixture(completer *stubCompleter) *chatFixture {
	doc := contextDoc("doc-1", "physics.pdf",
		"Chapter 1 covers measurement.",
		"Newton's first law states that objects remain at rest unless acted upon by a force.",
	)
	doc.UploadedAt = time.Now()

	chats := newStubChatStore()
	cache := newStubHistoryCache()
	events := &stubEvents{}
	svc := NewChatService(chats, newStubDocStore(doc), completer, cache, events, nil, 3, 200, 20)
	return &chatFixture{svc: svc, chats: chats, completer: completer, cache: cache, events: events}
}

func TestAsk_NewSessionWithCitations(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "Newton's first law is the law of inertia."})

	result, err := f.svc.Ask(context.Background(), "", "doc-1", "What is Newton's first law?")
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, "Newton's first law is the law of inertia.", result.Reply)
	require.NotEmpty(t, result.Citations)
	assert.Equal(t, 2, result.Citations[0].Page)

	// Both sides of the exchange are stored.
	messages, err := f.chats.ListMessages(result.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
	assert.Equal(t, result.Citations, messages[1].Citations())

	session, err := f.chats.GetSession(result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "doc-1", session.DocumentID)
	assert.Equal(t, "What is Newton's first law?", session.LastMessage)

	require.Len(t, f.events.published, 1)
	assert.Equal(t, model.EventChatExchanged, f.events.published[0].Kind)
}

func TestAsk_PromptCarriesExcerpts(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	_, err := f.svc.Ask(context.Background(), "", "doc-1", "Tell me about Newton's first law")
	require.NoError(t, err)

	require.Len(t, f.completer.prompts, 1)
	sent := f.completer.prompts[0]
	require.NotEmpty(t, sent)
	assert.Equal(t, "system", sent[0].Role)

	last := sent[len(sent)-1]
	assert.Equal(t, "user", last.Role)
	assert.Contains(t, last.Content, "[Page 2]")
	assert.Contains(t, last.Content, "excerpts from their coursebook")
}

func TestAsk_ExistingSessionUsesBoundDocument(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	first, err := f.svc.Ask(context.Background(), "", "doc-1", "What is Newton's first law?")
	require.NoError(t, err)

	second, err := f.svc.Ask(context.Background(), first.SessionID, "", "And what force acts on resting objects?")
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.NotEmpty(t, second.Citations)

	messages, err := f.chats.ListMessages(first.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 4)
}

func TestAsk_HistoryInPrompt(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	first, err := f.svc.Ask(context.Background(), "", "", "Remember the number forty two")
	require.NoError(t, err)

	_, err = f.svc.Ask(context.Background(), first.SessionID, "", "What number did I mention?")
	require.NoError(t, err)

	require.Len(t, f.completer.prompts, 2)
	joined := ""
	for _, m := range f.completer.prompts[1] {
		joined += m.Content + "\n"
	}
	assert.Contains(t, joined, "Remember the number forty two")
}

func TestAsk_GatewayFailureApologizes(t *testing.T) {
	f := newChatFixture(&stubCompleter{err: ai.ErrGatewayTimeout})

	result, err := f.svc.Ask(context.Background(), "", "doc-1", "What is Newton's first law?")
	require.NoError(t, err)

	assert.Contains(t, result.Reply, "trouble reaching")
	assert.Empty(t, result.Citations)

	// The failed exchange is still recorded.
	messages, err := f.chats.ListMessages(result.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestAsk_InvalidatesCachedHistory(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	result, err := f.svc.Ask(context.Background(), "", "", "hello there")
	require.NoError(t, err)

	assert.True(t, f.cache.dirty[result.SessionID])
}

func TestAsk_UnknownSession(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	_, err := f.svc.Ask(context.Background(), "missing", "", "hello")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestAsk_UnknownDocument(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	_, err := f.svc.Ask(context.Background(), "", "missing", "hello")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestAsk_BlankMessage(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	_, err := f.svc.Ask(context.Background(), "", "", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMessages_CacheRoundTrip(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	result, err := f.svc.Ask(context.Background(), "", "", "hello there")
	require.NoError(t, err)

	// First read misses the cache (dirty after the write), loads from the
	// store, and repopulates it once the marker clears.
	delete(f.cache.dirty, result.SessionID)
	messages, err := f.svc.Messages(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Contains(t, f.cache.histories, result.SessionID)

	// Second read is served from the cache.
	f.cache.histories[result.SessionID] = []model.ChatMessage{{SessionID: result.SessionID, Role: model.RoleUser, Content: "cached"}}
	cached, err := f.svc.Messages(context.Background(), result.SessionID)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "cached", cached[0].Content)
}

func TestMessages_UnknownSession(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	_, err := f.svc.Messages(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrChatNotFound)
}

func TestSessions_Summaries(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	result, err := f.svc.Ask(context.Background(), "", "", "summarize chapter one for me")
	require.NoError(t, err)

	summaries, err := f.svc.Sessions()
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, result.SessionID, summaries[0].SessionID)
	assert.Equal(t, "summarize chapter one for me", summaries[0].LastMessage)
	assert.Equal(t, int64(2), summaries[0].MessageCount)
}

func TestDeleteSession(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	result, err := f.svc.Ask(context.Background(), "", "", "hello there")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSession(context.Background(), result.SessionID))

	session, err := f.chats.GetSession(result.SessionID)
	require.NoError(t, err)
	assert.Nil(t, session)

	_, stillCached := f.cache.histories[result.SessionID]
	assert.False(t, stillCached)

	kinds := make([]string, 0, len(f.events.published))
	for _, e := range f.events.published {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, strings.Join(kinds, ","), model.EventChatDeleted)
}

func TestDeleteSession_Unknown(t *testing.T) {
	f := newChatFixture(&stubCompleter{response: "answer"})

	err := f.svc.DeleteSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrChatNotFound)
}
