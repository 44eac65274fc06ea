package repository

import (
	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

// ListConversation 获取两个用户之间的私信，按时间倒序分页
func (r *MessageRepository) ListConversation(userID, peerID int64, page, pageSize int) ([]*model.Message, int64, error) {
	var messages []*model.Message
	var total int64

	query := r.db.Model(&model.Message{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// ListPeerIDs 获取与用户有过私信往来的对端用户 ID
func (r *MessageRepository) ListPeerIDs(userID int64) ([]int64, error) {
	var senderIDs []int64
	err := r.db.Model(&model.Message{}).
		Where("recipient_id = ?", userID).
		Distinct().Pluck("sender_id", &senderIDs).Error
	if err != nil {
		return nil, err
	}

	var recipientIDs []int64
	err = r.db.Model(&model.Message{}).
		Where("sender_id = ?", userID).
		Distinct().Pluck("recipient_id", &recipientIDs).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(senderIDs)+len(recipientIDs))
	peers := make([]int64, 0, len(senderIDs)+len(recipientIDs))
	for _, id := range append(senderIDs, recipientIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		peers = append(peers, id)
	}
	return peers, nil
}

// GetLastMessage 获取会话中最新一条私信
func (r *MessageRepository) GetLastMessage(userID, peerID int64) (*model.Message, error) {
	var message model.Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at DESC").First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// CountUnread 统计来自某用户的未读私信数
func (r *MessageRepository) CountUnread(userID, peerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", userID, peerID, false).
		Count(&count).Error
	return count, err
}

// MarkConversationRead 将来自某用户的私信标记为已读
func (r *MessageRepository) MarkConversationRead(userID, peerID int64) error {
	return r.db.Model(&model.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", userID, peerID, false).
		Update("read", true).Error
}
