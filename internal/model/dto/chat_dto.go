package dto

// SendMessageRequest 发送私信请求
type SendMessageRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required,min=1,max=2000"`
}

// MessageItem 私信项
type MessageItem struct {
	ID          int64  `json:"id"`
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Content     string `json:"content"`
	Read        bool   `json:"read"`
	CreatedAt   string `json:"created_at"`
}

// ConversationItem 会话列表项（按对端用户聚合）
type ConversationItem struct {
	User        *AuthorInfo  `json:"user"`
	LastMessage *MessageItem `json:"last_message"`
	UnreadCount int64        `json:"unread_count"`
}
