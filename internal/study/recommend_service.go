package study

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/logger"
)

// VideoRecommendation is one suggested video. No real video lookup happens;
// titles are the model's suggestions for what to search.
type VideoRecommendation struct {
	Title   string `json:"title"`
	Channel string `json:"channel"`
	Reason  string `json:"reason"`
}

type RecommendService struct {
	docs         DocumentStore
	completer    Completer
	log          *logger.Logger
	contextChars int
}

func NewRecommendService(docs DocumentStore, completer Completer, log *logger.Logger, contextChars int) *RecommendService {
	if contextChars <= 0 {
		contextChars = 2000
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RecommendService{
		docs:         docs,
		completer:    completer,
		log:          log,
		contextChars: contextChars,
	}
}

// RecommendVideos asks the model for three videos on the topic, optionally
// grounded in a document's opening text. Any gateway or parse failure falls
// back to the fixed list.
func (s *RecommendService) RecommendVideos(ctx context.Context, topic, documentID string) ([]VideoRecommendation, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrInvalidInput
	}

	contextText := ""
	if documentID != "" {
		doc, err := s.docs.GetByID(documentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, ErrDocumentNotFound
		}
		contextText = truncateRunes(strings.Join(doc.Pages(), " "), s.contextChars)
	}

	recs := s.askModel(ctx, topic, contextText)
	if len(recs) == 0 {
		recs = fallbackRecommendations(topic)
	}
	return recs, nil
}

func (s *RecommendService) askModel(ctx context.Context, topic, contextText string) []VideoRecommendation {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommend 3 educational YouTube videos for the topic: %q\n\n", topic)
	if contextText != "" {
		fmt.Fprintf(&b, "Context from coursebook: %s\n\n", contextText)
	}
	b.WriteString(`Provide recommendations in this EXACT JSON format:
[
  {
    "title": "Video title",
    "channel": "Channel name",
    "reason": "Why this video is recommended"
  }
]

Focus on:
- Educational channels (Khan Academy, Crash Course, etc.)
- Clear explanations
- Relevance to the topic

RESPOND WITH ONLY THE JSON ARRAY, NO OTHER TEXT.`)

	messages := []ai.ChatMessage{
		{Role: "system", Content: "You are an educational content curator. Respond with ONLY valid JSON array, no markdown, no explanations."},
		{Role: "user", Content: b.String()},
	}

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.log.Warn("recommendation call failed, using fallback list", "topic", topic, "error", err)
		return nil
	}

	var recs []VideoRecommendation
	if err := json.Unmarshal([]byte(cleanJSONArray(raw)), &recs); err != nil {
		s.log.Warn("recommendation parse failed, using fallback list", "topic", topic, "error", err)
		return nil
	}

	valid := recs[:0]
	for _, r := range recs {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Channel) == "" {
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

func fallbackRecommendations(topic string) []VideoRecommendation {
	return []VideoRecommendation{
		{
			Title:   fmt.Sprintf("Introduction to %s", topic),
			Channel: "Khan Academy",
			Reason:  "Comprehensive introduction with clear explanations",
		},
		{
			Title:   fmt.Sprintf("%s - Complete Guide", topic),
			Channel: "Crash Course",
			Reason:  "In-depth coverage with visual aids",
		},
		{
			Title:   fmt.Sprintf("Understanding %s", topic),
			Channel: "3Blue1Brown",
			Reason:  "Visual and intuitive explanations",
		},
	}
}
