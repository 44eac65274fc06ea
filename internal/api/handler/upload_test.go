package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/response"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/service"
)

func setupUploadHandler(t *testing.T) *UploadHandler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.MaxSize = 1024
	cfg.Upload.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
	return NewUploadHandler(service.NewUploadService(nil, cfg))
}

// multipartFile builds a multipart body with a single "file" part.
func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadHandler_Image_MissingFile(t *testing.T) {
	handler := setupUploadHandler(t)

	router := gin.New()
	router.POST("/upload/image", mockAuth(1), handler.Image)

	req := httptest.NewRequest("POST", "/upload/image", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestUploadHandler_Image_InvalidExtension(t *testing.T) {
	handler := setupUploadHandler(t)

	router := gin.New()
	router.POST("/upload/image", mockAuth(1), handler.Image)

	body, contentType := multipartFile(t, "malware.exe", []byte("not an image"))
	req := httptest.NewRequest("POST", "/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestUploadHandler_Image_FileTooLarge(t *testing.T) {
	handler := setupUploadHandler(t)

	router := gin.New()
	router.POST("/upload/image", mockAuth(1), handler.Image)

	body, contentType := multipartFile(t, "big.jpg", make([]byte, 2048))
	req := httptest.NewRequest("POST", "/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}
