package dbmysql

import "time"

// Follow is a directed edge: follower sees followed's posts in the feed.
// Existence is binary; the composite unique index forbids duplicate edges.
type Follow struct {
	ID         uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	FollowerID uint64    `gorm:"column:follower_id;not null;index:idx_follower_followed,unique;index" json:"follower_id"`
	FollowedID uint64    `gorm:"column:followed_id;not null;index:idx_follower_followed,unique;index" json:"followed_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
