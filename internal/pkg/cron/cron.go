package cron

import (
	"log"
	"time"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

// Service 后台定时任务：定期清理已读的历史通知
type Service struct {
	notificationRepo *repository.NotificationRepository
	retentionDays    int
	stopChan         chan struct{}
}

func NewService(notificationRepo *repository.NotificationRepository, retentionDays int) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		retentionDays:    retentionDays,
		stopChan:         make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runNotificationCleanup()
	log.Println("Cron service started (notification cleanup)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runNotificationCleanup 每天执行一次已读通知清理
func (s *Service) runNotificationCleanup() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupNotifications()
		}
	}
}

func (s *Service) cleanupNotifications() {
	days := s.retentionDays
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	deleted, err := s.notificationRepo.DeleteReadBefore(cutoff)
	if err != nil {
		log.Printf("Notification cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Notification cleanup: removed %d read notifications", deleted)
	}
}

// RunNow 立即执行清理（用于测试或手动触发）
func (s *Service) RunNow() {
	s.cleanupNotifications()
}
