package study

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/logger"
)

const generalContext = "General educational topics"

type QuizService struct {
	docs          DocumentStore
	quizzes       QuizStore
	attempts      AttemptStore
	completer     Completer
	events        EventPublisher
	log           *logger.Logger
	contextChars  int
	answerOverlap float64
	maxQuestions  int
}

func NewQuizService(
	docs DocumentStore,
	quizzes QuizStore,
	attempts AttemptStore,
	completer Completer,
	events EventPublisher,
	log *logger.Logger,
	contextChars int,
	answerOverlap float64,
	maxQuestions int,
) *QuizService {
	if contextChars <= 0 {
		contextChars = 4000
	}
	if answerOverlap <= 0 || answerOverlap > 1 {
		answerOverlap = 0.4
	}
	if maxQuestions <= 0 {
		maxQuestions = 50
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QuizService{
		docs:          docs,
		quizzes:       quizzes,
		attempts:      attempts,
		completer:     completer,
		events:        events,
		log:           log,
		contextChars:  contextChars,
		answerOverlap: answerOverlap,
		maxQuestions:  maxQuestions,
	}
}

// Generate produces a quiz over one document (or all, when documentID is
// empty). Gateway or parse failures degrade to the built-in question set,
// so generation never fails once inputs validate and never yields an empty
// quiz.
func (s *QuizService) Generate(ctx context.Context, documentID string, numMCQ, numSAQ, numLAQ int) (*model.Quiz, error) {
	if numMCQ < 0 || numSAQ < 0 || numLAQ < 0 {
		return nil, ErrInvalidInput
	}
	total := numMCQ + numSAQ + numLAQ
	if total > s.maxQuestions {
		return nil, ErrInvalidInput
	}

	contextText, err := s.buildQuizContext(documentID)
	if err != nil {
		return nil, err
	}

	var questions []model.Question
	if total > 0 {
		questions = s.generateQuestions(ctx, contextText, numMCQ, numSAQ, numLAQ)
	}
	if len(questions) == 0 {
		// Also covers the all-zero request: callers always get questions.
		questions = fallbackQuestions(numMCQ, numSAQ, numLAQ)
	}

	quiz := &model.Quiz{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}
	quiz.SetQuestions(questions)
	if err := s.quizzes.Create(quiz); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventQuizGenerated, quiz.ID, fmt.Sprintf("%d questions", len(questions)))
	return quiz, nil
}

func (s *QuizService) buildQuizContext(documentID string) (string, error) {
	if documentID != "" {
		doc, err := s.docs.GetByID(documentID)
		if err != nil {
			return "", err
		}
		if doc == nil {
			return "", ErrDocumentNotFound
		}
		if doc.IsScanned {
			return "", ErrScannedDocument
		}
		return BuildContext([]model.Document{*doc}, s.contextChars), nil
	}

	docs, err := s.docs.List()
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return generalContext, nil
	}
	usable := docs[:0]
	for _, doc := range docs {
		if !doc.IsScanned {
			usable = append(usable, doc)
		}
	}
	if len(usable) == 0 {
		return generalContext, nil
	}
	return BuildContext(usable, s.contextChars), nil
}

func (s *QuizService) generateQuestions(ctx context.Context, contextText string, numMCQ, numSAQ, numLAQ int) []model.Question {
	prompt := fmt.Sprintf(`Based on the following content, generate quiz questions in STRICT JSON format:

Content: %s

Generate exactly:
- %d Multiple Choice Questions (MCQ) with 4 options each
- %d Short Answer Questions (SAQ)
- %d Long Answer Questions (LAQ)

RESPOND ONLY WITH A JSON ARRAY IN THIS EXACT FORMAT:
[
  {
    "question": "What is X?",
    "question_type": "MCQ",
    "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
    "correct_answer": "A) Option 1",
    "explanation": "Brief explanation"
  },
  {
    "question": "Explain Y",
    "question_type": "SAQ",
    "options": null,
    "correct_answer": "Expected answer",
    "explanation": "Brief explanation"
  }
]

IMPORTANT: Return ONLY the JSON array, no other text.`, contextText, numMCQ, numSAQ, numLAQ)

	messages := []ai.ChatMessage{
		{Role: "system", Content: "You are a quiz generator. Respond with ONLY valid JSON array, no markdown, no explanations."},
		{Role: "user", Content: prompt},
	}

	raw, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.log.Warn("quiz generation call failed, using fallback set", "error", err)
		return nil
	}

	var parsed []model.Question
	if err := json.Unmarshal([]byte(cleanJSONArray(raw)), &parsed); err != nil {
		s.log.Warn("quiz response parse failed, using fallback set", "error", err)
		return nil
	}

	questions := make([]model.Question, 0, len(parsed))
	counts := make(map[string]int, 3)
	for _, q := range parsed {
		if !validQuestion(q) {
			s.log.Warn("skipping invalid generated question", "question", q.Text)
			continue
		}
		counts[q.Type]++
		questions = append(questions, q)
	}
	if counts[model.QuestionTypeMCQ] != numMCQ ||
		counts[model.QuestionTypeSAQ] != numSAQ ||
		counts[model.QuestionTypeLAQ] != numLAQ {
		s.log.Warn("generated question mix mismatch, using fallback set",
			"want", fmt.Sprintf("%d/%d/%d", numMCQ, numSAQ, numLAQ),
			"got", fmt.Sprintf("%d/%d/%d", counts[model.QuestionTypeMCQ], counts[model.QuestionTypeSAQ], counts[model.QuestionTypeLAQ]))
		return nil
	}
	return questions
}

func validQuestion(q model.Question) bool {
	if strings.TrimSpace(q.Text) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
		return false
	}
	switch q.Type {
	case model.QuestionTypeMCQ:
		return len(q.Options) == 4
	case model.QuestionTypeSAQ, model.QuestionTypeLAQ:
		return len(q.Options) == 0
	}
	return false
}

// fallbackQuestions is the template set returned whenever the LLM path
// cannot produce a valid quiz: one question per requested type, or the full
// trio when no type was requested. Never empty.
func fallbackQuestions(numMCQ, numSAQ, numLAQ int) []model.Question {
	templates := map[string]model.Question{
		model.QuestionTypeMCQ: {
			Text: "Which of the following best describes the purpose of the study material?",
			Type: model.QuestionTypeMCQ,
			Options: []string{
				"A) To introduce and explain its core concepts",
				"B) To list unrelated trivia",
				"C) To serve as a fiction anthology",
				"D) To catalogue references only",
			},
			CorrectAnswer: "A) To introduce and explain its core concepts",
			Explanation:   "This is a template question. Configure the AI service for personalized questions.",
		},
		model.QuestionTypeSAQ: {
			Text:          "What is the main topic discussed in the material?",
			Type:          model.QuestionTypeSAQ,
			CorrectAnswer: "Please refer to the study material",
			Explanation:   "This is a template question. Configure the AI service for personalized questions.",
		},
		model.QuestionTypeLAQ: {
			Text:          "Summarize the key concepts covered in the material and how they relate.",
			Type:          model.QuestionTypeLAQ,
			CorrectAnswer: "Refer to the course material for the key concepts",
			Explanation:   "Template question - the AI service is needed for custom questions.",
		},
	}

	var questions []model.Question
	if numMCQ > 0 {
		questions = append(questions, templates[model.QuestionTypeMCQ])
	}
	if numSAQ > 0 {
		questions = append(questions, templates[model.QuestionTypeSAQ])
	}
	if numLAQ > 0 {
		questions = append(questions, templates[model.QuestionTypeLAQ])
	}
	if len(questions) == 0 {
		questions = []model.Question{
			templates[model.QuestionTypeMCQ],
			templates[model.QuestionTypeSAQ],
			templates[model.QuestionTypeLAQ],
		}
	}
	return questions
}

// Submit grades the answers against the stored quiz and persists the
// attempt. Missing or blank answers are incorrect, never an error.
func (s *QuizService) Submit(ctx context.Context, quizID string, answers []string) (*model.QuizAttempt, error) {
	if quizID == "" {
		return nil, ErrInvalidInput
	}
	quiz, err := s.quizzes.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	questions := quiz.Questions()
	if len(answers) > len(questions) {
		return nil, ErrInvalidInput
	}

	results := make([]model.AnswerResult, len(questions))
	correct := 0
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		isCorrect := s.gradeAnswer(q, answer)
		if isCorrect {
			correct++
		}
		results[i] = model.AnswerResult{
			QuestionIndex: i,
			Question:      q.Text,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		}
	}

	score := 0
	if len(questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(questions)) * 100))
	}

	attempt := &model.QuizAttempt{
		ID:             uuid.NewString(),
		QuizID:         quizID,
		CorrectCount:   correct,
		TotalQuestions: len(questions),
		ScorePercent:   score,
		SubmittedAt:    time.Now(),
	}
	attempt.SetResults(results)
	if err := s.attempts.Create(attempt); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, model.EventQuizSubmitted, attempt.ID, fmt.Sprintf("score %d%%", score))
	return attempt, nil
}

// gradeAnswer applies the type-specific matching rule: exact option match
// for MCQ, keyword-containment for free text.
func (s *QuizService) gradeAnswer(q model.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	want := strings.TrimSpace(q.CorrectAnswer)

	if q.Type == model.QuestionTypeMCQ {
		return strings.EqualFold(answer, want)
	}

	overlap := keywordOverlap(answer, want)
	if overlap == 0 {
		// Canonical answer with no significant keywords: exact compare.
		return strings.EqualFold(answer, want)
	}
	return overlap >= s.answerOverlap
}

func (s *QuizService) recordEvent(ctx context.Context, kind, subjectID, detail string) {
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

// cleanJSONArray strips markdown fences and slices out the first JSON array
// in a model response. Models decorate output despite the prompt.
func cleanJSONArray(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		var kept []string
		for _, line := range strings.Split(raw, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		raw = strings.TrimSpace(strings.Join(kept, "\n"))
	}
	if !strings.HasPrefix(raw, "[") {
		start := strings.Index(raw, "[")
		end := strings.LastIndex(raw, "]")
		if start >= 0 && end > start {
			raw = raw[start : end+1]
		}
	}
	return raw
}
