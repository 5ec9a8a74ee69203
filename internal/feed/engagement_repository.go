package feed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bachaboard/internal/dbmysql"
)

// ReactionOutcome reports which transition a reaction toggle performed
type ReactionOutcome string

const (
	ReactionAdded   ReactionOutcome = "added"
	ReactionUpdated ReactionOutcome = "updated"
	ReactionRemoved ReactionOutcome = "removed"
)

// Message returns the user-facing confirmation for the outcome
func (o ReactionOutcome) Message() string {
	switch o {
	case ReactionAdded:
		return "Reaction added"
	case ReactionUpdated:
		return "Reaction updated"
	case ReactionRemoved:
		return "Reaction removed"
	default:
		return "Reaction unchanged"
	}
}

// --------- REACTIONS / COMMENTS ---------

type Engagement interface {
	ToggleReaction(ctx context.Context, postID, userID uint64, emoji string) (ReactionOutcome, error)
	ListReactionsForPosts(ctx context.Context, postIDs []uint64) ([]dbmysql.Reaction, error)
	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	ListComments(ctx context.Context, postID uint64) ([]dbmysql.Comment, error)
	CountCommentsForPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
}

// ToggleReaction runs the per-(post,user) state machine:
//
//	Absent            -> Present(emoji)  insert, "added"
//	Present(emoji)    -> Absent          delete, "removed"
//	Present(other)    -> Present(emoji)  update, "updated"
//
// The composite unique index on (post_id, user_id) is the arbiter under
// concurrency: a racing insert loses with a duplicate-key error and is
// folded into the update path inside the same transaction.
func (r *FeedRepository) ToggleReaction(ctx context.Context, postID, userID uint64, emoji string) (ReactionOutcome, error) {
	var outcome ReactionOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing dbmysql.Reaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			reaction := &dbmysql.Reaction{PostID: postID, UserID: userID, Emoji: emoji}
			if err := tx.Create(reaction).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return r.resolveDuplicate(tx, postID, userID, emoji, &outcome)
				}
				return err
			}
			outcome = ReactionAdded
			return nil

		case err != nil:
			return err

		case existing.Emoji == emoji:
			if err := tx.Delete(&dbmysql.Reaction{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			outcome = ReactionRemoved
			return nil

		default:
			if err := tx.Model(&dbmysql.Reaction{}).Where("id = ?", existing.ID).
				Update("emoji", emoji).Error; err != nil {
				return err
			}
			outcome = ReactionUpdated
			return nil
		}
	})
	if err != nil {
		return "", fmt.Errorf("toggle reaction: %w", err)
	}
	return outcome, nil
}

// resolveDuplicate handles the lost insert race: some other request put a
// row in place between our read and write, so re-read and apply the
// Present(...) transitions against that row.
func (r *FeedRepository) resolveDuplicate(tx *gorm.DB, postID, userID uint64, emoji string, outcome *ReactionOutcome) error {
	var existing dbmysql.Reaction
	if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err != nil {
		return err
	}

	if existing.Emoji == emoji {
		if err := tx.Delete(&dbmysql.Reaction{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		*outcome = ReactionRemoved
		return nil
	}

	if err := tx.Model(&dbmysql.Reaction{}).Where("id = ?", existing.ID).
		Update("emoji", emoji).Error; err != nil {
		return err
	}
	*outcome = ReactionUpdated
	return nil
}

func (r *FeedRepository) ListReactionsForPosts(ctx context.Context, postIDs []uint64) ([]dbmysql.Reaction, error) {
	if len(postIDs) == 0 {
		return []dbmysql.Reaction{}, nil
	}
	var reactions []dbmysql.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Find(&reactions).Error
	return reactions, err
}

func (r *FeedRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *FeedRepository) ListComments(ctx context.Context, postID uint64) ([]dbmysql.Comment, error) {
	var comments []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("comment_id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *FeedRepository) CountCommentsForPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint64
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}
