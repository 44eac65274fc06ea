package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/api/middleware"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Image 上传帖子配图
// POST /api/v1/upload/image
func (h *UploadHandler) Image(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "请上传文件")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "文件读取失败")
		return
	}

	result, err := h.uploadService.UploadPostImage(userID, header.Filename, data)
	if err != nil {
		switch err {
		case service.ErrFileTooLarge:
			response.ParamError(c, err.Error())
		case service.ErrInvalidExtension:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "上传失败")
		}
		return
	}

	response.Success(c, result)
}
