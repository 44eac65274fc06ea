package model

import (
	"time"
)

type Community struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Title       string    `gorm:"size:200" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   int64     `gorm:"not null;index" json:"creator_id"`
	MemberCount int       `gorm:"default:0" json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Creator *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (Community) TableName() string {
	return "communities"
}

type CommunityMember struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	CommunityID int64     `gorm:"not null;uniqueIndex:idx_members_community_user" json:"community_id"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_members_community_user;index" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommunityMember) TableName() string {
	return "community_members"
}
