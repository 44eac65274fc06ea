package dto

// CreateCommunityRequest 创建社区请求
type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50,alphanum"`
	Title       string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// CommunityListRequest 社区列表请求参数
type CommunityListRequest struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Search   string `form:"search"`
}

// CommunityItem 社区列表项
type CommunityItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
	CreatedAt   string `json:"created_at"`
}

// CommunityDetail 社区详情
type CommunityDetail struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	MemberCount int         `json:"member_count"`
	Creator     *AuthorInfo `json:"creator,omitempty"`
	IsMember    bool        `json:"is_member"`
	CreatedAt   string      `json:"created_at"`
}

// MembershipResponse 加入/退出社区响应
type MembershipResponse struct {
	Joined      bool `json:"joined"`
	MemberCount int  `json:"member_count"`
}
