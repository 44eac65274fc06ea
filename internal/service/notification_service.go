package service

import (
	"time"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/queue"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List 获取通知列表
func (s *NotificationService) List(userID int64, page, pageSize int) ([]*dto.NotificationItem, int64, error) {
	notifications, total, err := s.notificationRepo.ListByUserID(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = buildNotificationItem(n)
	}
	return items, total, nil
}

// CountUnread 获取未读通知数
func (s *NotificationService) CountUnread(userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(userID)
}

// MarkAllRead 将全部通知标记为已读
func (s *NotificationService) MarkAllRead(userID int64) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// Persist 落库一条队列里的回复通知，由 notifier 进程调用
func (s *NotificationService) Persist(msg *queue.NotificationMessage) error {
	notification := &model.Notification{
		UserID:    msg.UserID,
		Type:      msg.Type,
		ActorID:   msg.ActorID,
		PostID:    msg.PostID,
		CommentID: msg.CommentID,
	}
	return s.notificationRepo.Create(notification)
}

func buildNotificationItem(n *model.Notification) *dto.NotificationItem {
	item := &dto.NotificationItem{
		ID:        n.ID,
		Type:      n.Type,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.Actor != nil {
		item.Actor = &dto.AuthorInfo{
			ID:        n.Actor.ID,
			Username:  n.Actor.Username,
			AvatarURL: n.Actor.AvatarURL,
			Karma:     n.Actor.Karma,
		}
	}
	return item
}
