package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	email := fmt.Sprintf("test_%d@example.com", seq)
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:      fmt.Sprintf("testuser_%d", seq),
		Email:         &email,
		PasswordHash:  &passwordHash,
		EnglishLevel:  "beginner",
		EmailVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithKarma 设置声望值
func WithKarma(karma int) func(*model.User) {
	return func(u *model.User) {
		u.Karma = karma
	}
}

// WithEnglishLevel 设置英语水平
func WithEnglishLevel(level string) func(*model.User) {
	return func(u *model.User) {
		u.EnglishLevel = level
	}
}

// TestCommunity 创建测试社区
func TestCommunity(t *testing.T, db *gorm.DB, creatorID int64, opts ...func(*model.Community)) *model.Community {
	t.Helper()

	seq := nextSeq()
	community := &model.Community{
		Name:        fmt.Sprintf("community_%d", seq),
		Title:       fmt.Sprintf("Test Community %d", seq),
		Description: "A place to practice English",
		CreatorID:   creatorID,
		MemberCount: 1,
	}

	for _, opt := range opts {
		opt(community)
	}

	if err := db.Create(community).Error; err != nil {
		t.Fatalf("Failed to create test community: %v", err)
	}

	return community
}

// WithCommunityName 设置社区名称
func WithCommunityName(name string) func(*model.Community) {
	return func(c *model.Community) {
		c.Name = name
	}
}

// TestPost 创建测试帖子
func TestPost(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Post)) *model.Post {
	t.Helper()

	seq := nextSeq()
	post := &model.Post{
		UserID:  userID,
		Title:   fmt.Sprintf("Test Post %d", seq),
		Content: "How do I use the present perfect tense?",
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// WithTitle 设置帖子标题
func WithTitle(title string) func(*model.Post) {
	return func(p *model.Post) {
		p.Title = title
	}
}

// WithCommunity 设置所属社区
func WithCommunity(communityID int64) func(*model.Post) {
	return func(p *model.Post) {
		p.CommunityID = &communityID
	}
}

// WithScore 设置帖子分数
func WithScore(score int) func(*model.Post) {
	return func(p *model.Post) {
		p.Score = score
	}
}

// TestComment 创建测试评论（顶层）
func TestComment(t *testing.T, db *gorm.DB, userID, postID int64, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}

// TestReply 创建测试回复，深度为父评论深度 +1
func TestReply(t *testing.T, db *gorm.DB, userID, postID int64, parent *model.Comment, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		UserID:   userID,
		PostID:   postID,
		ParentID: &parent.ID,
		Depth:    parent.Depth + 1,
		Content:  content,
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test reply: %v", err)
	}

	return comment
}

// TestVote 创建测试投票
func TestVote(t *testing.T, db *gorm.DB, userID int64, targetType string, targetID int64, value int) *model.Vote {
	t.Helper()

	vote := &model.Vote{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Value:      value,
	}

	if err := db.Create(vote).Error; err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return vote
}

// TestMessage 创建测试私信
func TestMessage(t *testing.T, db *gorm.DB, senderID, recipientID int64, content string) *model.Message {
	t.Helper()

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}

	if err := db.Create(message).Error; err != nil {
		t.Fatalf("Failed to create test message: %v", err)
	}

	return message
}

// TestNotification 创建测试通知
func TestNotification(t *testing.T, db *gorm.DB, userID, actorID, postID int64, opts ...func(*model.Notification)) *model.Notification {
	t.Helper()

	notification := &model.Notification{
		UserID:  userID,
		Type:    model.NotificationTypeReply,
		ActorID: actorID,
		PostID:  postID,
	}

	for _, opt := range opts {
		opt(notification)
	}

	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("Failed to create test notification: %v", err)
	}

	return notification
}

// WithRead 设置已读状态
func WithRead(read bool) func(*model.Notification) {
	return func(n *model.Notification) {
		n.Read = read
	}
}

// WithCommentID 设置关联评论
func WithCommentID(commentID int64) func(*model.Notification) {
	return func(n *model.Notification) {
		n.CommentID = &commentID
	}
}
