package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type CommunityHandler struct {
	communityService *service.CommunityService
}

func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
	}
}

// Create 创建社区
// POST /api/v1/communities
func (h *CommunityHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	community, err := h.communityService.Create(userID, &req)
	if err != nil {
		switch err {
		case service.ErrCommunityExists:
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, community)
}

// List 获取社区列表
// GET /api/v1/communities
func (h *CommunityHandler) List(c *gin.Context) {
	var req dto.CommunityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	items, total, err := h.communityService.List(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, req.Page, req.PageSize, items)
}

// Get 获取社区详情
// GET /api/v1/communities/:name
func (h *CommunityHandler) Get(c *gin.Context) {
	name := c.Param("name")

	var viewerID *int64
	if id, ok := middleware.GetUserID(c); ok {
		viewerID = &id
	}

	detail, err := h.communityService.GetByName(name, viewerID)
	if err != nil {
		switch err {
		case service.ErrCommunityNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Join 加入社区
// POST /api/v1/communities/:id/members
func (h *CommunityHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	communityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的社区ID")
		return
	}

	resp, err := h.communityService.Join(userID, communityID)
	if err != nil {
		switch err {
		case service.ErrCommunityNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "加入成功", resp)
}

// Leave 退出社区
// DELETE /api/v1/communities/:id/members
func (h *CommunityHandler) Leave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	communityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的社区ID")
		return
	}

	resp, err := h.communityService.Leave(userID, communityID)
	if err != nil {
		switch err {
		case service.ErrCommunityNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已退出", resp)
}
