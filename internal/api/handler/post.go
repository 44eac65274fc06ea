package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type PostHandler struct {
	postService *service.PostService
	voteService *service.VoteService
}

func NewPostHandler(postService *service.PostService, voteService *service.VoteService) *PostHandler {
	return &PostHandler{
		postService: postService,
		voteService: voteService,
	}
}

// Create 发布帖子
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Create(userID, &req)
	if err != nil {
		switch err {
		case service.ErrCommunityNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, post)
}

// List 获取帖子列表
// GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	var req dto.PostListRequest
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

	items, total, err := h.postService.List(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, req.Page, req.Limit, items)
}

// Get 获取帖子详情
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	var viewerID *int64
	if id, ok := middleware.GetUserID(c); ok {
		viewerID = &id
	}

	detail, err := h.postService.Get(postID, viewerID)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Update 编辑帖子
// PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	post, err := h.postService.Update(userID, postID, &req)
	if err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPostPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", post)
}

// Delete 删除帖子（连带删除评论与投票）
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	if err := h.postService.Delete(userID, postID); err != nil {
		switch err {
		case service.ErrPostNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPostPermission:
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Vote 帖子投票
// POST /api/v1/posts/:id/vote
func (h *PostHandler) Vote(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的帖子ID")
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.voteService.VotePost(userID, postID, req.VoteType)
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
