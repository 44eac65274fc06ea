package repository

import (
	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

// 帖子排序方式
const (
	PostSortHot = "hot"
	PostSortNew = "new"
	PostSortTop = "top"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) GetByIDWithRelations(id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Preload("User").Preload("Community").Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *PostRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PostRepository) Delete(id int64) error {
	return r.db.Delete(&model.Post{}, id).Error
}

// List 获取帖子列表，支持按社区或作者过滤
func (r *PostRepository) List(page, pageSize int, sortBy string, communityID, userID *int64) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := r.db.Model(&model.Post{}).Preload("User").Preload("Community")

	if communityID != nil {
		query = query.Where("community_id = ?", *communityID)
	}
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch sortBy {
	case PostSortNew:
		query = query.Order("created_at DESC")
	case PostSortTop:
		query = query.Order("score DESC, created_at DESC")
	default: // hot
		query = query.Order("(score * 3 + comment_count * 2 + view_count) DESC, created_at DESC")
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// CommentIDsByPostID 获取帖子下所有评论 ID（帖子删除时清理投票用）
func (r *PostRepository) CommentIDsByPostID(postID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Comment{}).Where("post_id = ?", postID).Pluck("id", &ids).Error
	return ids, err
}

// DeleteCommentsByPostID 删除帖子下全部评论
func (r *PostRepository) DeleteCommentsByPostID(postID int64) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.Comment{}).Error
}

// IncrementViewCount 增加浏览数
func (r *PostRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// IncrementCommentCount 增加评论数
func (r *PostRepository) IncrementCommentCount(id int64, delta int) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		Update("comment_count", gorm.Expr("comment_count + ?", delta)).Error
}

// UpdateScore 更新帖子分数
func (r *PostRepository) UpdateScore(id int64, score int) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).Update("score", score).Error
}
