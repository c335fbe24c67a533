package model

import (
	"encoding/json"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Citation points at the evidence for an assistant reply: a 1-indexed page
// of the bound document and a contiguous snippet of that page's text.
type Citation struct {
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
}

// ChatSession groups tutor-chat messages. DocumentID is empty for sessions
// not bound to a specific document.
type ChatSession struct {
	ID          string    `gorm:"primaryKey;size:36" json:"chat_id"`
	DocumentID  string    `gorm:"size:36;index" json:"pdf_id,omitempty"`
	LastMessage string    `gorm:"type:text" json:"last_message"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`
}

// ChatMessage is one turn of a session. Assistant messages may carry the
// citations that grounded the reply.
type ChatMessage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SessionID     string    `gorm:"size:36;not null;index" json:"session_id"`
	Role          string    `gorm:"size:16;not null" json:"role"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	CitationsJSON string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

func (m *ChatMessage) Citations() []Citation {
	if m.CitationsJSON == "" {
		return nil
	}
	var citations []Citation
	_ = json.Unmarshal([]byte(m.CitationsJSON), &citations)
	return citations
}

func (m *ChatMessage) SetCitations(citations []Citation) {
	if len(citations) == 0 {
		m.CitationsJSON = ""
		return
	}
	b, _ := json.Marshal(citations)
	m.CitationsJSON = string(b)
}
