package dbmysql

import (
	"time"
)

type User struct {
	UserID       uint64     `gorm:"primaryKey;column:user_id;autoIncrement" json:"user_id"`
	Username     string     `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	DisplayName  string     `gorm:"column:display_name;size:100;not null" json:"display_name"`
	Theme        string     `gorm:"column:theme;size:20;default:'neutral'" json:"theme"`
	AvatarURL    *string    `gorm:"column:avatar_url;size:500" json:"avatar_url"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login"`
}
