package service

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/oss"
)

var (
	ErrFileTooLarge     = errors.New("文件过大")
	ErrInvalidExtension = errors.New("不支持的文件格式")
)

type UploadService struct {
	ossClient *oss.Client
	cfg       *config.Config
}

func NewUploadService(ossClient *oss.Client, cfg *config.Config) *UploadService {
	return &UploadService{ossClient: ossClient, cfg: cfg}
}

// UploadPostImage 上传帖子配图
func (s *UploadService) UploadPostImage(userID int64, filename string, data []byte) (*dto.UploadImageResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if err := s.validate(ext, int64(len(data))); err != nil {
		return nil, err
	}

	url, err := s.ossClient.UploadPostImage(userID, data, ext)
	if err != nil {
		return nil, err
	}

	return &dto.UploadImageResponse{URL: url}, nil
}

func (s *UploadService) validate(ext string, size int64) error {
	if s.cfg.Upload.MaxSize > 0 && size > s.cfg.Upload.MaxSize {
		return ErrFileTooLarge
	}

	allowed := false
	for _, e := range s.cfg.Upload.AllowedExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidExtension
	}
	return nil
}
