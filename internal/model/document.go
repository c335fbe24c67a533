package model

import (
	"encoding/json"
	"time"
)

// Document is an uploaded PDF with its per-page extracted text.
// Pages are stored as a JSON array of strings, one entry per page,
// empty string where extraction yielded nothing.
type Document struct {
	ID         string    `gorm:"primaryKey;size:36" json:"pdf_id"`
	Filename   string    `gorm:"size:256;not null" json:"filename"`
	FilePath   string    `gorm:"size:512;not null" json:"-"`
	FileSize   int64     `gorm:"not null" json:"file_size"`
	TotalPages int       `gorm:"not null" json:"total_pages"`
	PagesJSON  string    `gorm:"type:longtext" json:"-"`
	IsScanned  bool      `gorm:"not null" json:"is_scanned"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Pages returns the parsed page texts; nil on parse error.
func (d *Document) Pages() []string {
	if d.PagesJSON == "" {
		return nil
	}
	var pages []string
	_ = json.Unmarshal([]byte(d.PagesJSON), &pages)
	return pages
}

// SetPages stores the page texts as JSON and keeps TotalPages in sync.
func (d *Document) SetPages(pages []string) {
	if pages == nil {
		pages = []string{}
	}
	b, _ := json.Marshal(pages)
	d.PagesJSON = string(b)
	d.TotalPages = len(pages)
}
