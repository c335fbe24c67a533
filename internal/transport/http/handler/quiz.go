package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/study"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/transport/http/response"
)

type QuizHandler struct {
	quizService *study.QuizService
}

type GenerateQuizRequest struct {
	PDFID  string `json:"pdf_id"`
	NumMCQ *int   `json:"num_mcq"`
	NumSAQ *int   `json:"num_saq"`
	NumLAQ *int   `json:"num_laq"`
}

type QuizAnswer struct {
	QuestionIndex int    `json:"question_index"`
	UserAnswer    string `json:"user_answer"`
}

type SubmitQuizRequest struct {
	QuizID  string       `json:"quiz_id" binding:"required"`
	Answers []QuizAnswer `json:"answers"`
}

func NewQuizHandler(quizService *study.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) Generate(c *gin.Context) {
	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	// Omitted counts take the usual quiz shape.
	numMCQ := valueOr(req.NumMCQ, 5)
	numSAQ := valueOr(req.NumSAQ, 3)
	numLAQ := valueOr(req.NumLAQ, 2)

	quiz, err := h.quizService.Generate(c.Request.Context(), req.PDFID, numMCQ, numSAQ, numLAQ)
	if err != nil {
		switch {
		case errors.Is(err, study.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, study.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		case errors.Is(err, study.ErrScannedDocument):
			response.Error(c, http.StatusUnprocessableEntity, response.CodeUnprocessable, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "quiz generation failed")
		}
		return
	}

	response.OK(c, gin.H{
		"quiz_id":   quiz.ID,
		"pdf_id":    quiz.DocumentID,
		"questions": quiz.Questions(),
	})
}

func (h *QuizHandler) Submit(c *gin.Context) {
	var req SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answers, ok := positionalAnswers(req.Answers)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid question index")
		return
	}

	attempt, err := h.quizService.Submit(c.Request.Context(), req.QuizID, answers)
	if err != nil {
		switch {
		case errors.Is(err, study.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, study.ErrQuizNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "quiz submission failed")
		}
		return
	}

	response.OK(c, gin.H{
		"attempt_id":       attempt.ID,
		"quiz_id":          attempt.QuizID,
		"score_percentage": attempt.ScorePercent,
		"correct_count":    attempt.CorrectCount,
		"total_questions":  attempt.TotalQuestions,
		"results":          attempt.Results(),
	})
}

// positionalAnswers folds indexed answers into a slice where position i
// answers question i. Duplicate indexes keep the last value.
func positionalAnswers(answers []QuizAnswer) ([]string, bool) {
	const indexCeiling = 1000

	maxIndex := -1
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= indexCeiling {
			return nil, false
		}
		if a.QuestionIndex > maxIndex {
			maxIndex = a.QuestionIndex
		}
	}
	out := make([]string, maxIndex+1)
	for _, a := range answers {
		out[a.QuestionIndex] = a.UserAnswer
	}
	return out, true
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
