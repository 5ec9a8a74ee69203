package feed

import (
	"context"

	"gorm.io/gorm"

	"bachaboard/internal/dbmysql"
)

// FeedRepository is the storage layer for posts and their engagement rows.
// It satisfies the PostStore and Engagement interfaces consumed by the
// service.
type FeedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// --------- POSTS ---------

type PostStore interface {
	CreatePost(ctx context.Context, post *dbmysql.Post) error
	GetPostByID(ctx context.Context, id uint64) (*dbmysql.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]dbmysql.Post, error)
	DeletePost(ctx context.Context, id uint64) error
}

func (r *FeedRepository) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *FeedRepository) GetPostByID(ctx context.Context, id uint64) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).First(&post, "post_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByAuthors returns posts by any of the given authors in reverse
// chronological order, with post_id as the stable tie-break for posts
// created in the same instant.
func (r *FeedRepository) ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]dbmysql.Post, error) {
	if len(authorIDs) == 0 {
		return []dbmysql.Post{}, nil
	}

	var posts []dbmysql.Post
	err := r.db.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Order("post_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// DeletePost removes the post together with its comments and reactions in
// one transaction: either every row goes or none does.
func (r *FeedRepository) DeletePost(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&dbmysql.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&dbmysql.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbmysql.Post{}, "post_id = ?", id).Error
	})
}
