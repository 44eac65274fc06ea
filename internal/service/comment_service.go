package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/queue"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
)

var (
	ErrCommentNotFound   = errors.New("评论不存在")
	ErrCommentPermission = errors.New("无权操作此评论")
	ErrParentNotFound    = errors.New("父评论不存在")
	ErrParentNotInPost   = errors.New("父评论不属于该帖子")
	ErrDepthExceeded     = errors.New("评论嵌套层级超出上限")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
	voteRepo    *repository.VoteRepository
	userRepo    *repository.UserRepository
	notifyQueue *queue.Queue
	cfg         *config.Config
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	postRepo *repository.PostRepository,
	voteRepo *repository.VoteRepository,
	userRepo *repository.UserRepository,
	notifyQueue *queue.Queue,
	cfg *config.Config,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		voteRepo:    voteRepo,
		userRepo:    userRepo,
		notifyQueue: notifyQueue,
		cfg:         cfg,
	}
}

// Create 创建评论
func (s *CommentService) Create(userID int64, req *dto.CreateCommentRequest) (*dto.CommentItem, error) {
	// 验证帖子存在
	post, err := s.postRepo.GetByID(req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	depth := 0
	var notifyUserID int64 = post.UserID

	// 如果是回复，验证父评论
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}

		// 父评论必须属于同一帖子
		if parent.PostID != req.PostID {
			return nil, ErrParentNotInPost
		}

		// 深度随父评论 +1，超出上限拒绝
		depth = parent.Depth + 1
		if depth > s.maxDepth() {
			return nil, ErrDepthExceeded
		}

		notifyUserID = parent.UserID
	}

	// 获取用户信息
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// 创建评论
	comment := &model.Comment{
		UserID:   userID,
		PostID:   req.PostID,
		ParentID: req.ParentID,
		Depth:    depth,
		Content:  req.Content,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// 增加评论数（与评论创建不在同一事务，计数允许最终一致）
	s.postRepo.IncrementCommentCount(req.PostID, 1)

	// 回复通知，失败不影响评论创建
	if s.notifyQueue != nil && notifyUserID != userID {
		msg := &queue.NotificationMessage{
			UserID:    notifyUserID,
			ActorID:   userID,
			Type:      model.NotificationTypeReply,
			PostID:    req.PostID,
			CommentID: &comment.ID,
		}
		if err := s.notifyQueue.Push(context.Background(), msg); err != nil {
			log.Printf("Failed to enqueue reply notification: %v", err)
		}
	}

	item := s.buildCommentItem(comment)
	item.User = &dto.CommentUser{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Karma:     user.Karma,
	}
	return item, nil
}

// Update 编辑评论内容，作者本人可操作
func (s *CommentService) Update(userID, commentID int64, content string) (*dto.CommentItem, error) {
	comment, err := s.commentRepo.GetByIDWithUser(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, ErrCommentPermission
	}

	if err := s.commentRepo.UpdateContent(commentID, content); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()
	return s.buildCommentItem(comment), nil
}

// Delete 删除评论及其全部子孙，作者本人可操作
func (s *CommentService) Delete(userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrCommentPermission
	}

	// 工作队列逐层收集子孙评论，构造时保证无环
	levels := [][]int64{{commentID}}
	frontier := []int64{commentID}
	for len(frontier) > 0 {
		children, err := s.commentRepo.GetChildIDs(frontier)
		if err != nil {
			return err
		}
		if len(children) == 0 {
			break
		}
		levels = append(levels, children)
		frontier = children
	}

	// 先删子后删父，避免中途出现悬挂的 parent 引用
	var totalDeleted int64
	for i := len(levels) - 1; i >= 0; i-- {
		deleted, err := s.commentRepo.DeleteByIDs(levels[i])
		if err != nil {
			return err
		}
		totalDeleted += deleted
	}

	// 清理子树上的投票记录
	var allIDs []int64
	for _, level := range levels {
		allIDs = append(allIDs, level...)
	}
	if err := s.voteRepo.DeleteByTargets(model.VoteTargetComment, allIDs); err != nil {
		log.Printf("Failed to delete votes for comment subtree %d: %v", commentID, err)
	}

	// 减少帖子评论数（本体加子孙）
	s.postRepo.IncrementCommentCount(comment.PostID, -int(totalDeleted))

	return nil
}

// ListByPostID 获取帖子的顶层评论列表，附带嵌套回复
func (s *CommentService) ListByPostID(postID int64, req *dto.CommentListRequest, viewerID *int64) ([]*dto.CommentItem, int64, error) {
	// 验证帖子存在
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPostNotFound
		}
		return nil, 0, err
	}

	// 获取顶层评论
	comments, total, err := s.commentRepo.ListTopLevelByPostID(postID, req.SortBy, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	if len(comments) == 0 {
		return []*dto.CommentItem{}, total, nil
	}

	items := make([]*dto.CommentItem, len(comments))
	itemsByID := make(map[int64]*dto.CommentItem, len(comments))
	allIDs := make([]int64, 0, len(comments))
	for i, c := range comments {
		items[i] = s.buildCommentItem(c)
		itemsByID[c.ID] = items[i]
		allIDs = append(allIDs, c.ID)
	}

	// 逐层批量拉取回复，固定层数，回复按分数排序
	frontier := allIDs
	for level := 0; level < s.replyFetchDepth() && len(frontier) > 0; level++ {
		replies, err := s.commentRepo.GetRepliesByParentIDs(frontier)
		if err != nil {
			return nil, 0, err
		}

		next := make([]int64, 0, len(replies))
		for _, r := range replies {
			item := s.buildCommentItem(r)
			parent := itemsByID[*r.ParentID]
			parent.Replies = append(parent.Replies, item)
			itemsByID[r.ID] = item
			next = append(next, r.ID)
			allIDs = append(allIDs, r.ID)
		}
		frontier = next
	}

	// 已登录用户附带自己的投票状态
	if viewerID != nil {
		votes, err := s.voteRepo.GetUserVotes(*viewerID, model.VoteTargetComment, allIDs)
		if err == nil {
			for id, value := range votes {
				if item, ok := itemsByID[id]; ok {
					item.UserVote = voteLabel(value)
				}
			}
		}
	}

	return items, total, nil
}

func (s *CommentService) maxDepth() int {
	if s.cfg != nil && s.cfg.Forum.MaxCommentDepth > 0 {
		return s.cfg.Forum.MaxCommentDepth
	}
	return 5
}

func (s *CommentService) replyFetchDepth() int {
	if s.cfg != nil && s.cfg.Forum.ReplyFetchDepth > 0 {
		return s.cfg.Forum.ReplyFetchDepth
	}
	return 3
}

func (s *CommentService) buildCommentItem(c *model.Comment) *dto.CommentItem {
	item := &dto.CommentItem{
		ID:        c.ID,
		PostID:    c.PostID,
		ParentID:  c.ParentID,
		Depth:     c.Depth,
		Content:   c.Content,
		Score:     c.Score,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}

	if !c.UpdatedAt.IsZero() && c.UpdatedAt.After(c.CreatedAt) {
		item.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
	}

	if c.User != nil {
		item.User = &dto.CommentUser{
			ID:        c.User.ID,
			Username:  c.User.Username,
			AvatarURL: c.User.AvatarURL,
			Karma:     c.User.Karma,
		}
	}

	return item
}
