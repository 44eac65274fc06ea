package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

var (
	ErrCommunityNotFound = errors.New("社区不存在")
	ErrCommunityExists   = errors.New("社区名已被使用")
)

type CommunityService struct {
	communityRepo *repository.CommunityRepository
	cfg           *config.Config
}

func NewCommunityService(communityRepo *repository.CommunityRepository, cfg *config.Config) *CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		cfg:           cfg,
	}
}

// Create 创建社区，创建者自动加入
func (s *CommunityService) Create(userID int64, req *dto.CreateCommunityRequest) (*dto.CommunityDetail, error) {
	exists, err := s.communityRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCommunityExists
	}

	community := &model.Community{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   userID,
	}
	if err := s.communityRepo.Create(community); err != nil {
		return nil, err
	}

	member := &model.CommunityMember{
		CommunityID: community.ID,
		UserID:      userID,
	}
	if err := s.communityRepo.AddMember(member); err != nil {
		return nil, err
	}
	s.communityRepo.IncrementMemberCount(community.ID, 1)

	community.MemberCount = 1
	detail := s.buildCommunityDetail(community)
	detail.IsMember = true
	return detail, nil
}

// List 获取社区列表
func (s *CommunityService) List(req *dto.CommunityListRequest) ([]*dto.CommunityItem, int64, error) {
	communities, total, err := s.communityRepo.List(req.Page, req.PageSize, req.Search)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.CommunityItem, len(communities))
	for i, c := range communities {
		items[i] = &dto.CommunityItem{
			ID:          c.ID,
			Name:        c.Name,
			Title:       c.Title,
			Description: c.Description,
			MemberCount: c.MemberCount,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		}
	}
	return items, total, nil
}

// GetByName 获取社区详情
func (s *CommunityService) GetByName(name string, viewerID *int64) (*dto.CommunityDetail, error) {
	community, err := s.communityRepo.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}

	detail := s.buildCommunityDetail(community)

	if viewerID != nil {
		isMember, _ := s.communityRepo.IsMember(community.ID, *viewerID)
		detail.IsMember = isMember
	}

	return detail, nil
}

// Join 加入社区
func (s *CommunityService) Join(userID, communityID int64) (*dto.MembershipResponse, error) {
	community, err := s.communityRepo.GetByID(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}

	exists, err := s.communityRepo.IsMember(communityID, userID)
	if err != nil {
		return nil, err
	}

	if exists {
		// 已加入，返回当前状态（幂等）
		return &dto.MembershipResponse{
			Joined:      true,
			MemberCount: community.MemberCount,
		}, nil
	}

	member := &model.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
	}
	if err := s.communityRepo.AddMember(member); err != nil {
		return nil, err
	}

	s.communityRepo.IncrementMemberCount(communityID, 1)

	return &dto.MembershipResponse{
		Joined:      true,
		MemberCount: community.MemberCount + 1,
	}, nil
}

// Leave 退出社区
func (s *CommunityService) Leave(userID, communityID int64) (*dto.MembershipResponse, error) {
	community, err := s.communityRepo.GetByID(communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}

	exists, err := s.communityRepo.IsMember(communityID, userID)
	if err != nil {
		return nil, err
	}

	if !exists {
		// 未加入，返回当前状态（幂等）
		return &dto.MembershipResponse{
			Joined:      false,
			MemberCount: community.MemberCount,
		}, nil
	}

	if err := s.communityRepo.RemoveMember(communityID, userID); err != nil {
		return nil, err
	}

	s.communityRepo.IncrementMemberCount(communityID, -1)

	newCount := community.MemberCount - 1
	if newCount < 0 {
		newCount = 0
	}

	return &dto.MembershipResponse{
		Joined:      false,
		MemberCount: newCount,
	}, nil
}

func (s *CommunityService) buildCommunityDetail(c *model.Community) *dto.CommunityDetail {
	detail := &dto.CommunityDetail{
		ID:          c.ID,
		Name:        c.Name,
		Title:       c.Title,
		Description: c.Description,
		MemberCount: c.MemberCount,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}

	if c.Creator != nil {
		detail.Creator = &dto.AuthorInfo{
			ID:        c.Creator.ID,
			Username:  c.Creator.Username,
			AvatarURL: c.Creator.AvatarURL,
			Karma:     c.Creator.Karma,
		}
	}

	return detail
}
