package study

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
)

const recommendResponseJSON = `[
  {"title": "Gravity Explained", "channel": "Veritasium", "reason": "Intuitive demonstrations"},
  {"title": "Orbits and Gravity", "channel": "Crash Course", "reason": "Course-style overview"},
  {"title": "The Gravity Equation", "channel": "3Blue1Brown", "reason": "Visual derivation"}
]`

func newRecommendFixture(completer *stubCompleter) *RecommendService {
	doc := contextDoc("doc-1", "physics.pdf", "Gravity pulls objects toward each other.")
	return NewRecommendService(newStubDocStore(doc), completer, nil, 2000)
}

func TestRecommendVideos_FromModelResponse(t *testing.T) {
	completer := &stubCompleter{response: recommendResponseJSON}
	svc := newRecommendFixture(completer)

	recs, err := svc.RecommendVideos(context.Background(), "gravity", "")
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "Gravity Explained", recs[0].Title)
	assert.Equal(t, "Veritasium", recs[0].Channel)
}

func TestRecommendVideos_DocumentContextInPrompt(t *testing.T) {
	completer := &stubCompleter{response: recommendResponseJSON}
	svc := newRecommendFixture(completer)

	_, err := svc.RecommendVideos(context.Background(), "gravity", "doc-1")
	require.NoError(t, err)

	require.Len(t, completer.prompts, 1)
	last := completer.prompts[0][len(completer.prompts[0])-1]
	assert.Contains(t, last.Content, "Context from coursebook")
	assert.Contains(t, last.Content, "Gravity pulls objects")
}

func TestRecommendVideos_FallbackOnGatewayError(t *testing.T) {
	svc := newRecommendFixture(&stubCompleter{err: ai.ErrGateway})

	recs, err := svc.RecommendVideos(context.Background(), "gravity", "")
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Contains(t, recs[0].Title, "gravity")
	assert.Equal(t, "Khan Academy", recs[0].Channel)
}

func TestRecommendVideos_FallbackOnUnparseableResponse(t *testing.T) {
	svc := newRecommendFixture(&stubCompleter{response: "I suggest you watch some videos!"})

	recs, err := svc.RecommendVideos(context.Background(), "algebra", "")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Crash Course", recs[1].Channel)
}

func TestRecommendVideos_TopicRequired(t *testing.T) {
	svc := newRecommendFixture(&stubCompleter{response: recommendResponseJSON})

	_, err := svc.RecommendVideos(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecommendVideos_UnknownDocument(t *testing.T) {
	svc := newRecommendFixture(&stubCompleter{response: recommendResponseJSON})

	_, err := svc.RecommendVideos(context.Background(), "gravity", "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
