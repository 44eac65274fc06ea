package dto

// NotificationItem 通知项
type NotificationItem struct {
	ID        int64       `json:"id"`
	Type      string      `json:"type"`
	Actor     *AuthorInfo `json:"actor"`
	PostID    int64       `json:"post_id"`
	CommentID *int64      `json:"comment_id,omitempty"`
	Read      bool        `json:"read"`
	CreatedAt string      `json:"created_at"`
}
