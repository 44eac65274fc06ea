package dto

// UploadImageResponse 图片上传响应
type UploadImageResponse struct {
	URL string `json:"url"`
}
