package model

import (
	"time"
)

type Post struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	CommunityID  *int64    `gorm:"index" json:"community_id,omitempty"`
	Title        string    `gorm:"size:300;not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ImageURL     string    `gorm:"size:500" json:"image_url,omitempty"`
	Score        int       `gorm:"default:0;index" json:"score"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	ViewCount    int       `gorm:"default:0" json:"view_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Community *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}
