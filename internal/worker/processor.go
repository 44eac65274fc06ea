package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/pubsub"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/queue"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

// Processor 通知任务处理器：落库后广播给在线用户
type Processor struct {
	notificationService *service.NotificationService
	publisher           *pubsub.Publisher
}

// NewProcessor 创建通知任务处理器
func NewProcessor(notificationService *service.NotificationService, publisher *pubsub.Publisher) *Processor {
	return &Processor{
		notificationService: notificationService,
		publisher:           publisher,
	}
}

// Process 处理一条通知任务
func (p *Processor) Process(ctx context.Context, msg *queue.NotificationMessage) error {
	if err := p.notificationService.Persist(msg); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	// 广播给在线实例，失败只记日志
	event := &pubsub.NotificationEvent{
		UserID:    msg.UserID,
		Type:      msg.Type,
		PostID:    msg.PostID,
		CommentID: msg.CommentID,
	}
	if err := p.publisher.PublishNotification(ctx, event); err != nil {
		log.Printf("Failed to publish notification event for user %d: %v", msg.UserID, err)
	}

	return nil
}
