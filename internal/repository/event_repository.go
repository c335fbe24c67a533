package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *model.StudyEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create study event failed: %w", err)
	}
	return nil
}
