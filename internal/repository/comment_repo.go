package repository

import (
	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

// 评论排序方式
const (
	CommentSortTop = "top"
	CommentSortNew = "new"
	CommentSortOld = "old"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDWithUser 获取评论及用户信息
func (r *CommentRepository) GetByIDWithUser(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update 保存评论
func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(id int64, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// UpdateScore 更新评论分数
func (r *CommentRepository) UpdateScore(id int64, score int) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("score", score).Error
}

// DeleteByIDs 批量删除评论
func (r *CommentRepository) DeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

// GetChildIDs 获取一批评论的直接子评论 ID（级联删除的工作队列用）
func (r *CommentRepository) GetChildIDs(parentIDs []int64) ([]int64, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.Model(&model.Comment{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

// ListTopLevelByPostID 获取帖子的顶层评论列表
func (r *CommentRepository) ListTopLevelByPostID(postID int64, sortBy string, page, pageSize int) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	var total int64

	query := r.db.Model(&model.Comment{}).
		Preload("User").
		Where("post_id = ? AND parent_id IS NULL", postID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch sortBy {
	case CommentSortNew:
		query = query.Order("created_at DESC")
	case CommentSortOld:
		query = query.Order("created_at ASC")
	default: // top
		query = query.Order("score DESC, created_at DESC")
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// GetRepliesByParentIDs 批量获取回复，固定按分数排序
func (r *CommentRepository) GetRepliesByParentIDs(parentIDs []int64) ([]*model.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	var replies []*model.Comment
	err := r.db.Preload("User").
		Where("parent_id IN ?", parentIDs).
		Order("score DESC, created_at DESC").
		Find(&replies).Error
	return replies, err
}

// CountByPostID 获取帖子的评论总数
func (r *CommentRepository) CountByPostID(postID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
