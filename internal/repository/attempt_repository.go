package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
)

type AttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		return fmt.Errorf("create attempt failed: %w", err)
	}
	return nil
}

// ListRecent returns attempts newest first, capped at limit.
func (r *AttemptRepository) ListRecent(limit int) ([]model.QuizAttempt, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var attempts []model.QuizAttempt
	if err := r.db.Order("submitted_at DESC").Limit(limit).Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("list attempts failed: %w", err)
	}
	return attempts, nil
}
