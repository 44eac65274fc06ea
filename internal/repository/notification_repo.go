package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

// ListByUserID 获取用户的通知列表
func (r *NotificationRepository) ListByUserID(userID int64, page, pageSize int) ([]*model.Notification, int64, error) {
	var notifications []*model.Notification
	var total int64

	query := r.db.Model(&model.Notification{}).
		Preload("Actor").
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// CountUnread 统计未读通知数
func (r *NotificationRepository) CountUnread(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAllRead 将用户全部通知标记为已读
func (r *NotificationRepository) MarkAllRead(userID int64) error {
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// DeleteReadBefore 删除指定时间之前的已读通知，返回删除条数
func (r *NotificationRepository) DeleteReadBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&model.Notification{})
	return result.RowsAffected, result.Error
}
