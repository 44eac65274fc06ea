package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List 获取通知列表
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.notificationService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// UnreadCount 获取未读通知数
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	count, err := h.notificationService.CountUnread(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"count": count})
}

// MarkAllRead 将全部通知标记为已读
// PUT /api/v1/notifications/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "已全部标记为已读", nil)
}
