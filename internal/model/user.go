package model

import (
	"time"
)

type User struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	Username              string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                 *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash          *string    `gorm:"size:255" json:"-"`
	AvatarURL             string     `gorm:"size:500" json:"avatar_url"`
	Bio                   string     `gorm:"type:text" json:"bio"`
	GithubID              *string    `gorm:"column:github_id;size:50;uniqueIndex" json:"-"`
	Karma                 int        `gorm:"default:0" json:"karma"`
	EnglishLevel          string     `gorm:"size:20;default:beginner" json:"english_level"` // beginner, intermediate, advanced
	EmailVerified         bool       `gorm:"default:false" json:"email_verified"`
	VerificationCode      *string    `gorm:"size:100" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
