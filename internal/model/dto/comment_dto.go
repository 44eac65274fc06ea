package dto

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	PostID   int64  `json:"post_id" binding:"required"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Content  string `json:"content" binding:"required,min=1,max=5000"`
}

// UpdateCommentRequest 编辑评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentListRequest 评论列表请求参数
type CommentListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	SortBy string `form:"sort_by,default=top"` // top, new, old
}

// CommentItem 评论项
type CommentItem struct {
	ID        int64          `json:"id"`
	User      *CommentUser   `json:"user"`
	PostID    int64          `json:"post_id"`
	ParentID  *int64         `json:"parent_id"`
	Depth     int            `json:"depth"`
	Content   string         `json:"content"`
	Score     int            `json:"score"`
	UserVote  *string        `json:"user_vote,omitempty"` // up, down；未投票为 null
	Replies   []*CommentItem `json:"replies,omitempty"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// CommentUser 评论用户信息
type CommentUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Karma     int    `json:"karma"`
}
