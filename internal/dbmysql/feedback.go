package dbmysql

import "time"

type Feedback struct {
	FeedbackID uint64    `gorm:"primaryKey;column:feedback_id;autoIncrement" json:"feedback_id"`
	UserID     uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	Subject    string    `gorm:"column:subject;size:255;not null" json:"subject"`
	Message    string    `gorm:"column:message;type:text;not null" json:"message"`
	Category   string    `gorm:"column:category;size:50;default:'general'" json:"category"` // general, character_request, bug, feature
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
