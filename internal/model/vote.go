package model

import (
	"time"
)

// 投票目标类型
const (
	VoteTargetPost    = "post"
	VoteTargetComment = "comment"
)

// 投票值，每个用户对同一目标最多保留一行
const (
	VoteValueUp   = 1
	VoteValueDown = -1
)

type Vote struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_votes_user_target" json:"user_id"`
	TargetType string    `gorm:"size:20;not null;uniqueIndex:idx_votes_user_target" json:"target_type"`
	TargetID   int64     `gorm:"not null;uniqueIndex:idx_votes_user_target;index" json:"target_id"`
	Value      int       `gorm:"not null" json:"value"` // 1 或 -1
	CreatedAt  time.Time `json:"created_at"`
}

func (Vote) TableName() string {
	return "votes"
}
