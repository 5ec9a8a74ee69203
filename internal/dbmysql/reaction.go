package dbmysql

import "time"

// Reaction holds at most one row per (post, user); the composite unique
// index is what serializes concurrent toggles from the same user.
type Reaction struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;not null;index:idx_post_user,unique" json:"post_id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_post_user,unique" json:"user_id"`
	Emoji     string    `gorm:"column:emoji;size:32;not null" json:"emoji"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
