// Package feedback implements the small suggestion box: authenticated
// users submit entries and can read back their own.
package feedback

import (
	"context"

	"gorm.io/gorm"

	"bachaboard/internal/dbmysql"
)

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, entry *dbmysql.Feedback) error
	ListByUser(ctx context.Context, userID uint64) ([]dbmysql.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) CreateFeedback(ctx context.Context, entry *dbmysql.Feedback) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uint64) ([]dbmysql.Feedback, error) {
	var entries []dbmysql.Feedback
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
