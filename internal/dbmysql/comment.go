package dbmysql

import "time"

// Comment rows are append-only; there is no edit or delete path besides
// the cascade when the owning post is deleted.
type Comment struct {
	CommentID uint64    `gorm:"primaryKey;column:comment_id;autoIncrement" json:"comment_id"`
	PostID    uint64    `gorm:"column:post_id;not null;index" json:"post_id"`
	AuthorID  uint64    `gorm:"column:author_id;not null" json:"author_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
