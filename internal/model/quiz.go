package model

import (
	"encoding/json"
	"time"
)

const (
	QuestionTypeMCQ = "MCQ"
	QuestionTypeSAQ = "SAQ"
	QuestionTypeLAQ = "LAQ"
)

// Question is one quiz question. MCQ questions carry exactly four options;
// SAQ/LAQ carry none.
type Question struct {
	Text          string   `json:"question"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is an immutable generated question set. DocumentID is empty when the
// quiz was generated over all uploaded documents.
type Quiz struct {
	ID            string    `gorm:"primaryKey;size:36" json:"quiz_id"`
	DocumentID    string    `gorm:"size:36;index" json:"pdf_id,omitempty"`
	QuestionsJSON string    `gorm:"type:longtext;not null" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

func (q *Quiz) Questions() []Question {
	if q.QuestionsJSON == "" {
		return nil
	}
	var questions []Question
	_ = json.Unmarshal([]byte(q.QuestionsJSON), &questions)
	return questions
}

func (q *Quiz) SetQuestions(questions []Question) {
	b, _ := json.Marshal(questions)
	q.QuestionsJSON = string(b)
}
