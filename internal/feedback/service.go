package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bachaboard/internal/common"
	"bachaboard/internal/dbmysql"
	"bachaboard/internal/user"
)

// Entry is a feedback row joined with the submitter's display name
type Entry struct {
	ID        uint64    `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

type FeedbackService interface {
	Submit(ctx context.Context, userID uint64, subject, message, category string) error
	ListOwn(ctx context.Context, userID uint64) ([]Entry, error)
}

type feedbackService struct {
	repo  FeedbackRepository
	users user.UserRepository
}

func NewFeedbackService(repo FeedbackRepository, users user.UserRepository) FeedbackService {
	return &feedbackService{repo: repo, users: users}
}

func (s *feedbackService) Submit(ctx context.Context, userID uint64, subject, message, category string) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("%w: subject is required", common.ErrInvalidArgument)
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: message is required", common.ErrInvalidArgument)
	}
	if category == "" {
		category = "general"
	}

	entry := &dbmysql.Feedback{
		UserID:   userID,
		Subject:  subject,
		Message:  message,
		Category: category,
	}
	return s.repo.CreateFeedback(ctx, entry)
}

func (s *feedbackService) ListOwn(ctx context.Context, userID uint64) ([]Entry, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	submitter, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:        row.FeedbackID,
			Subject:   row.Subject,
			Message:   row.Message,
			Category:  row.Category,
			CreatedAt: row.CreatedAt,
			UserName:  submitter.DisplayName,
		})
	}
	return entries, nil
}
