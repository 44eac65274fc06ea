package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/markdown"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

var (
	ErrPostNotFound   = errors.New("帖子不存在")
	ErrPostPermission = errors.New("无权操作此帖子")
)

type PostService struct {
	postRepo      *repository.PostRepository
	communityRepo *repository.CommunityRepository
	voteRepo      *repository.VoteRepository
	cfg           *config.Config
}

func NewPostService(
	postRepo *repository.PostRepository,
	communityRepo *repository.CommunityRepository,
	voteRepo *repository.VoteRepository,
	cfg *config.Config,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		communityRepo: communityRepo,
		voteRepo:      voteRepo,
		cfg:           cfg,
	}
}

// Create 发帖
func (s *PostService) Create(userID int64, req *dto.CreatePostRequest) (*dto.PostDetail, error) {
	// 指定社区时验证其存在
	if req.CommunityID != nil {
		if _, err := s.communityRepo.GetByID(*req.CommunityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommunityNotFound
			}
			return nil, err
		}
	}

	post := &model.Post{
		UserID:      userID,
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByIDWithRelations(post.ID)
	if err != nil {
		return nil, err
	}
	return s.buildPostDetail(created), nil
}

// Get 获取帖子详情
func (s *PostService) Get(postID int64, viewerID *int64) (*dto.PostDetail, error) {
	post, err := s.postRepo.GetByIDWithRelations(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// 增加浏览数
	s.postRepo.IncrementViewCount(postID)

	detail := s.buildPostDetail(post)

	// 已登录用户附带自己的投票状态
	if viewerID != nil {
		votes, err := s.voteRepo.GetUserVotes(*viewerID, model.VoteTargetPost, []int64{postID})
		if err == nil {
			if value, ok := votes[postID]; ok {
				detail.UserVote = voteLabel(value)
			}
		}
	}

	return detail, nil
}

// List 获取帖子列表
func (s *PostService) List(req *dto.PostListRequest) ([]*dto.PostItem, int64, error) {
	posts, total, err := s.postRepo.List(req.Page, req.Limit, req.SortBy, req.CommunityID, req.UserID)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.PostItem, len(posts))
	for i, p := range posts {
		items[i] = s.buildPostItem(p)
	}
	return items, total, nil
}

// Update 编辑帖子，作者本人可操作
func (s *PostService) Update(userID, postID int64, req *dto.UpdatePostRequest) (*dto.PostDetail, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.UserID != userID {
		return nil, ErrPostPermission
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if len(fields) > 0 {
		if err := s.postRepo.UpdateFields(postID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.postRepo.GetByIDWithRelations(postID)
	if err != nil {
		return nil, err
	}
	return s.buildPostDetail(updated), nil
}

// Delete 删除帖子及其全部评论和投票，作者本人可操作
func (s *PostService) Delete(userID, postID int64) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.UserID != userID {
		return ErrPostPermission
	}

	// 先清理评论及其投票，再删帖子本体
	commentIDs, err := s.postRepo.CommentIDsByPostID(postID)
	if err != nil {
		return err
	}
	if err := s.voteRepo.DeleteByTargets(model.VoteTargetComment, commentIDs); err != nil {
		log.Printf("Failed to delete comment votes for post %d: %v", postID, err)
	}
	if err := s.postRepo.DeleteCommentsByPostID(postID); err != nil {
		return err
	}
	if err := s.voteRepo.DeleteByTargets(model.VoteTargetPost, []int64{postID}); err != nil {
		log.Printf("Failed to delete votes for post %d: %v", postID, err)
	}

	return s.postRepo.Delete(postID)
}

func (s *PostService) buildPostItem(p *model.Post) *dto.PostItem {
	item := &dto.PostItem{
		ID:           p.ID,
		Title:        p.Title,
		Score:        p.Score,
		CommentCount: p.CommentCount,
		ViewCount:    p.ViewCount,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}

	if p.User != nil {
		item.Author = &dto.AuthorInfo{
			ID:        p.User.ID,
			Username:  p.User.Username,
			AvatarURL: p.User.AvatarURL,
			Karma:     p.User.Karma,
		}
	}
	if p.Community != nil {
		item.Community = &dto.CommunityInfo{
			ID:   p.Community.ID,
			Name: p.Community.Name,
		}
	}

	return item
}

func (s *PostService) buildPostDetail(p *model.Post) *dto.PostDetail {
	detail := &dto.PostDetail{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		ContentHTML:  markdown.Render(p.Content),
		Score:        p.Score,
		CommentCount: p.CommentCount,
		ViewCount:    p.ViewCount,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}

	if p.User != nil {
		detail.Author = &dto.AuthorInfo{
			ID:        p.User.ID,
			Username:  p.User.Username,
			AvatarURL: p.User.AvatarURL,
			Karma:     p.User.Karma,
		}
	}
	if p.Community != nil {
		detail.Community = &dto.CommunityInfo{
			ID:   p.Community.ID,
			Name: p.Community.Name,
		}
	}

	return detail
}
