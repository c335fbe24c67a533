package model

import (
	"encoding/json"
	"time"
)

// AnswerResult is the graded outcome of one question within an attempt.
type AnswerResult struct {
	QuestionIndex int    `json:"question_index"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizAttempt is an immutable submission record. Results hold exactly one
// entry per question of the referenced quiz, in question order.
type QuizAttempt struct {
	ID             string    `gorm:"primaryKey;size:36" json:"attempt_id"`
	QuizID         string    `gorm:"size:36;not null;index" json:"quiz_id"`
	ResultsJSON    string    `gorm:"type:longtext;not null" json:"-"`
	CorrectCount   int       `gorm:"not null" json:"correct_answers"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	ScorePercent   int       `gorm:"not null" json:"score_percentage"`
	SubmittedAt    time.Time `gorm:"index" json:"submitted_at"`
}

func (a *QuizAttempt) Results() []AnswerResult {
	if a.ResultsJSON == "" {
		return nil
	}
	var results []AnswerResult
	_ = json.Unmarshal([]byte(a.ResultsJSON), &results)
	return results
}

func (a *QuizAttempt) SetResults(results []AnswerResult) {
	b, _ := json.Marshal(results)
	a.ResultsJSON = string(b)
}
