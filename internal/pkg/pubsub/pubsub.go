package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelChatMessages  = "chat_messages"
	ChannelNotifications = "notifications"
)

// ChatMessage 私信消息，跨实例广播后推送给在线收件人
type ChatMessage struct {
	MessageID   int64  `json:"message_id"`
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Content     string `json:"content"`
	CreatedAt   string `json:"created_at"`
}

// NotificationEvent 通知事件，notifier 落库后广播
type NotificationEvent struct {
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id"`
	Type           string `json:"type"`
	PostID         int64  `json:"post_id"`
	CommentID      *int64 `json:"comment_id,omitempty"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishChat 发布私信消息
func (p *Publisher) PublishChat(ctx context.Context, msg *ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	return p.client.Publish(ctx, ChannelChatMessages, data).Err()
}

// PublishNotification 发布通知事件
func (p *Publisher) PublishNotification(ctx context.Context, event *NotificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	return p.client.Publish(ctx, ChannelNotifications, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// SubscribeChat 订阅私信消息
func (s *Subscriber) SubscribeChat(ctx context.Context, handler func(*ChatMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelChatMessages)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var chatMsg ChatMessage
			if err := json.Unmarshal([]byte(msg.Payload), &chatMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&chatMsg)
		}
	}
}

// SubscribeNotifications 订阅通知事件
func (s *Subscriber) SubscribeNotifications(ctx context.Context, handler func(*NotificationEvent)) error {
	pubsub := s.client.Subscribe(ctx, ChannelNotifications)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event NotificationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			handler(&event)
		}
	}
}
