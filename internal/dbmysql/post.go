package dbmysql

import (
	"time"
)

type Post struct {
	PostID      uint64    `gorm:"primaryKey;column:post_id;autoIncrement" json:"post_id"`
	AuthorID    uint64    `gorm:"column:author_id;not null;index" json:"author_id"`
	Type        string    `gorm:"column:type;size:20;not null" json:"type"`
	Content     *string   `gorm:"column:content;type:text" json:"content"`
	MediaURL    *string   `gorm:"column:media_url;size:500" json:"media_url"`
	DrawingData *string   `gorm:"column:drawing_data;type:text" json:"drawing_data"` // opaque canvas state for re-editing
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"-" json:"author,omitempty"`
}
