package model

import "time"

const (
	EventDocumentUploaded = "document.uploaded"
	EventDocumentDeleted  = "document.deleted"
	EventQuizGenerated    = "quiz.generated"
	EventQuizSubmitted    = "quiz.submitted"
	EventChatExchanged    = "chat.exchanged"
	EventChatDeleted      = "chat.deleted"
)

// StudyEvent is an audit record of what the student did. Events ride the
// message queue and are persisted by a worker; nothing reads them back for
// request handling.
type StudyEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:64;not null;index" json:"kind"`
	SubjectID string    `gorm:"size:36;index" json:"subject_id"`
	Detail    string    `gorm:"size:512" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
