package user

import (
	"context"

	"gorm.io/gorm"

	"bachaboard/internal/dbmysql"
)

// FollowRepository owns the directed follow edges. Every mutation is a
// single explicit insert or delete; nothing updates "the other side".
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *dbmysql.Follow) error
	DeleteFollow(ctx context.Context, followerID, followedID uint64) error
	IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error)
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
	FollowerCount(ctx context.Context, userID uint64) (int64, error)
	FollowingCount(ctx context.Context, userID uint64) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateFollow(ctx context.Context, follow *dbmysql.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepository) DeleteFollow(ctx context.Context, followerID, followedID uint64) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&dbmysql.Follow{}).Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowingIDs returns the ids of everyone userID follows. The user's own
// id is never stored as an edge; the feed composer adds it explicitly.
func (r *followRepository) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *followRepository) FollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("followed_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *followRepository) FollowingCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}
