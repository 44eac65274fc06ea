package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	voteService    *service.VoteService
}

func NewCommentHandler(commentService *service.CommentService, voteService *service.VoteService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		voteService:    voteService,
	}
}

// Create 发表评论
// POST /api/v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(userID, &req)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrParentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrParentNotInPost:
			response.ParamError(c, err.Error())
		case service.ErrDepthExceeded:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, comment)
}

// List 获取帖子的评论列表
// GET /api/v1/comments/post/:postId
func (h *CommentHandler) List(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("postId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	var req dto.CommentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	// 获取用户ID（可选）
	var viewerID *int64
	if id, ok := middleware.GetUserID(c); ok {
		viewerID = &id
	}

	items, total, err := h.commentService.ListByPostID(postID, &req, viewerID)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, total, req.Page, req.Limit, items)
}

// Update 编辑评论
// PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	comment, err := h.commentService.Update(userID, commentID, req.Content)
	if err != nil {
		switch err {
		case service.ErrCommentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrCommentPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", comment)
}

// Delete 删除评论（连带删除所有子孙评论）
// DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	if err := h.commentService.Delete(userID, commentID); err != nil {
		switch err {
		case service.ErrCommentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrCommentPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Vote 评论投票
// POST /api/v1/comments/:id/vote
func (h *CommentHandler) Vote(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的评论ID")
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.voteService.VoteComment(userID, commentID, req.VoteType)
	if err != nil {
		switch err {
		case service.ErrVoteTargetNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}
