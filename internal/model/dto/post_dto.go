package dto

// CreatePostRequest 创建帖子请求
type CreatePostRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=300"`
	Content     string `json:"content" binding:"required,min=1,max=10000"`
	CommunityID *int64 `json:"community_id,omitempty"`
	ImageURL    string `json:"image_url,omitempty" binding:"omitempty,url,max=500"`
}

// UpdatePostRequest 更新帖子请求
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,min=1,max=300"`
	Content *string `json:"content,omitempty" binding:"omitempty,min=1,max=10000"`
}

// PostListRequest 帖子列表请求参数
type PostListRequest struct {
	Page        int    `form:"page,default=1"`
	Limit       int    `form:"limit,default=20"`
	SortBy      string `form:"sort_by,default=hot"` // hot, new, top
	CommunityID *int64 `form:"community_id"`
	UserID      *int64 `form:"user_id"`
}

// PostItem 帖子列表项
type PostItem struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Author       *AuthorInfo    `json:"author"`
	Community    *CommunityInfo `json:"community,omitempty"`
	Score        int            `json:"score"`
	CommentCount int            `json:"comment_count"`
	ViewCount    int            `json:"view_count"`
	ImageURL     string         `json:"image_url,omitempty"`
	CreatedAt    string         `json:"created_at"`
}

// PostDetail 帖子详情
type PostDetail struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	ContentHTML  string         `json:"content_html"`
	Author       *AuthorInfo    `json:"author"`
	Community    *CommunityInfo `json:"community,omitempty"`
	Score        int            `json:"score"`
	CommentCount int            `json:"comment_count"`
	ViewCount    int            `json:"view_count"`
	ImageURL     string         `json:"image_url,omitempty"`
	UserVote     *string        `json:"user_vote,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// AuthorInfo 作者信息
type AuthorInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Karma     int    `json:"karma"`
}

// CommunityInfo 帖子所属社区信息
type CommunityInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
