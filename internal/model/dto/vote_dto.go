package dto

// VoteRequest 投票请求
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=up down none"`
}

// VoteResponse 投票响应
type VoteResponse struct {
	Score    int     `json:"score"`
	UserVote *string `json:"user_vote"` // up, down；清除后为 null
}
