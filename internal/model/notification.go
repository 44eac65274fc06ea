package model

import (
	"time"
)

// 通知类型
const (
	NotificationTypeReply = "reply"
)

type Notification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	ActorID   int64     `gorm:"not null" json:"actor_id"`
	PostID    int64     `gorm:"not null" json:"post_id"`
	CommentID *int64    `json:"comment_id,omitempty"`
	Read      bool      `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// 关联
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
