package service

import (
	"errors"
	"io"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/oss"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

type UserService struct {
	userRepo  *repository.UserRepository
	ossClient *oss.Client
	cfg       *config.Config
}

func NewUserService(userRepo *repository.UserRepository, ossClient *oss.Client, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:  userRepo,
		ossClient: ossClient,
		cfg:       cfg,
	}
}

// GetProfile 获取用户详情
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return buildUserInfo(user), nil
}

// GetPublicProfile 获取用户公开信息（不含邮箱）
func (s *UserService) GetPublicProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	info := buildUserInfo(user)
	info.Email = ""
	info.EmailVerified = false
	return info, nil
}

// UpdateProfile 更新用户信息
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 检查用户名是否已被占用
	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		user.Username = *req.Username
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.EnglishLevel != nil {
		user.EnglishLevel = *req.EnglishLevel
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UploadAvatar 上传用户头像到 OSS
func (s *UserService) UploadAvatar(userID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", errors.New("OSS 客户端未配置")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	avatarURL, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", err
	}

	// 更新用户头像 URL
	err = s.userRepo.UpdateFields(userID, map[string]interface{}{
		"avatar_url": avatarURL,
	})
	if err != nil {
		return "", err
	}

	return avatarURL, nil
}
