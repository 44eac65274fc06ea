package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/pubsub"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

var (
	ErrRecipientNotFound = errors.New("收件人不存在")
	ErrMessageToSelf     = errors.New("不能给自己发私信")
)

type ChatService struct {
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	publisher   *pubsub.Publisher
	cfg         *config.Config
}

func NewChatService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		cfg:         cfg,
	}
}

// Send 发送私信
func (s *ChatService) Send(userID int64, req *dto.SendMessageRequest) (*dto.MessageItem, error) {
	if req.RecipientID == userID {
		return nil, ErrMessageToSelf
	}

	// 验证收件人存在
	if _, err := s.userRepo.GetByID(req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	message := &model.Message{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	item := buildMessageItem(message)

	// 广播到 pubsub，在线实例推送给收件人；失败不影响私信落库
	if s.publisher != nil {
		chatMsg := &pubsub.ChatMessage{
			MessageID:   message.ID,
			SenderID:    userID,
			RecipientID: req.RecipientID,
			Content:     req.Content,
			CreatedAt:   message.CreatedAt.Format(time.RFC3339),
		}
		if err := s.publisher.PublishChat(context.Background(), chatMsg); err != nil {
			log.Printf("Failed to publish chat message %d: %v", message.ID, err)
		}
	}

	return item, nil
}

// ListConversation 获取与某用户的私信记录，并将其标记为已读
func (s *ChatService) ListConversation(userID, peerID int64, page, pageSize int) ([]*dto.MessageItem, int64, error) {
	messages, total, err := s.messageRepo.ListConversation(userID, peerID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	// 打开会话即视为已读
	if err := s.messageRepo.MarkConversationRead(userID, peerID); err != nil {
		log.Printf("Failed to mark conversation read for user %d: %v", userID, err)
	}

	items := make([]*dto.MessageItem, len(messages))
	for i, m := range messages {
		items[i] = buildMessageItem(m)
	}
	return items, total, nil
}

// ListConversations 获取会话列表
func (s *ChatService) ListConversations(userID int64) ([]*dto.ConversationItem, error) {
	peerIDs, err := s.messageRepo.ListPeerIDs(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ConversationItem, 0, len(peerIDs))
	for _, peerID := range peerIDs {
		peer, err := s.userRepo.GetByID(peerID)
		if err != nil {
			continue // 对端用户可能已注销
		}

		last, err := s.messageRepo.GetLastMessage(userID, peerID)
		if err != nil {
			continue
		}

		unread, _ := s.messageRepo.CountUnread(userID, peerID)

		items = append(items, &dto.ConversationItem{
			User: &dto.AuthorInfo{
				ID:        peer.ID,
				Username:  peer.Username,
				AvatarURL: peer.AvatarURL,
				Karma:     peer.Karma,
			},
			LastMessage: buildMessageItem(last),
			UnreadCount: unread,
		})
	}

	return items, nil
}

func buildMessageItem(m *model.Message) *dto.MessageItem {
	return &dto.MessageItem{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}
