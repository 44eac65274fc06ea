package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

// 投票动作
const (
	VoteTypeUp   = "up"
	VoteTypeDown = "down"
	VoteTypeNone = "none"
)

var ErrVoteTargetNotFound = errors.New("投票目标不存在")

type VoteService struct {
	voteRepo    *repository.VoteRepository
	postRepo    *repository.PostRepository
	commentRepo *repository.CommentRepository
	userRepo    *repository.UserRepository
	cfg         *config.Config
}

func NewVoteService(
	voteRepo *repository.VoteRepository,
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *VoteService {
	return &VoteService{
		voteRepo:    voteRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

// VotePost 对帖子投票
func (s *VoteService) VotePost(userID, postID int64, voteType string) (*dto.VoteResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteTargetNotFound
		}
		return nil, err
	}

	return s.vote(userID, model.VoteTargetPost, postID, post.UserID, voteType, s.postRepo.UpdateScore)
}

// VoteComment 对评论投票
func (s *VoteService) VoteComment(userID, commentID int64, voteType string) (*dto.VoteResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteTargetNotFound
		}
		return nil, err
	}

	return s.vote(userID, model.VoteTargetComment, commentID, comment.UserID, voteType, s.commentRepo.UpdateScore)
}

// vote 统一的投票流程：先无条件清除旧票，再按需写入新票并重算分数
func (s *VoteService) vote(userID int64, targetType string, targetID, authorID int64, voteType string, updateScore func(int64, int) error) (*dto.VoteResponse, error) {
	existing, err := s.voteRepo.Get(userID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	// 重复同向投票视为取消
	effective := voteType
	if existing != nil && voteLabelValue(existing.Value) == voteType {
		effective = VoteTypeNone
	}

	// 幂等重置
	if existing != nil {
		if err := s.voteRepo.Delete(userID, targetType, targetID); err != nil {
			return nil, err
		}
	}

	if effective != VoteTypeNone {
		vote := &model.Vote{
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
			Value:      voteValue(effective),
		}
		if err := s.voteRepo.Create(vote); err != nil {
			return nil, err
		}
	}

	// 重算净得分并落库
	score, err := s.voteRepo.Score(targetType, targetID)
	if err != nil {
		return nil, err
	}
	if err := updateScore(targetID, score); err != nil {
		return nil, err
	}

	// 声望按新投票方向平推 ±1，不做差额核算，失败不回滚投票
	if delta := karmaDelta(effective); delta != 0 {
		if err := s.userRepo.IncrementKarma(authorID, delta); err != nil {
			log.Printf("Failed to update karma for user %d: %v", authorID, err)
		}
	}

	return &dto.VoteResponse{
		Score:    score,
		UserVote: voteLabelFromType(effective),
	}, nil
}

func voteValue(voteType string) int {
	if voteType == VoteTypeDown {
		return model.VoteValueDown
	}
	return model.VoteValueUp
}

func karmaDelta(voteType string) int {
	switch voteType {
	case VoteTypeUp:
		return 1
	case VoteTypeDown:
		return -1
	default:
		return 0
	}
}

func voteLabelValue(value int) string {
	if value == model.VoteValueDown {
		return VoteTypeDown
	}
	return VoteTypeUp
}

// voteLabel 把投票值转成返回给前端的标签
func voteLabel(value int) *string {
	label := voteLabelValue(value)
	return &label
}

// voteLabelFromType none 统一返回 null
func voteLabelFromType(voteType string) *string {
	if voteType == VoteTypeNone {
		return nil
	}
	label := voteType
	return &label
}
