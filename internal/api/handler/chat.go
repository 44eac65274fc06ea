package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Send 发送私信
// POST /api/v1/messages
func (h *ChatHandler) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	msg, err := h.chatService.Send(userID, &req)
	if err != nil {
		switch err {
		case service.ErrRecipientNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrMessageToSelf:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, msg)
}

// ListConversations 获取会话列表
// GET /api/v1/messages
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	items, err := h.chatService.ListConversations(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

// ListConversation 获取与某用户的私信记录
// GET /api/v1/messages/:userId
func (h *ChatHandler) ListConversation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	peerID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的用户ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	items, total, err := h.chatService.ListConversation(userID, peerID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
