package repository

import (
	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

func (r *CommunityRepository) Create(community *model.Community) error {
	return r.db.Create(community).Error
}

func (r *CommunityRepository) GetByID(id int64) (*model.Community, error) {
	var community model.Community
	err := r.db.Where("id = ?", id).First(&community).Error
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) GetByName(name string) (*model.Community, error) {
	var community model.Community
	err := r.db.Preload("Creator").Where("name = ?", name).First(&community).Error
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Community{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// List 获取社区列表，按成员数排序
func (r *CommunityRepository) List(page, pageSize int, search string) ([]*model.Community, int64, error) {
	var communities []*model.Community
	var total int64

	query := r.db.Model(&model.Community{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("member_count DESC").Offset(offset).Limit(pageSize).Find(&communities).Error
	if err != nil {
		return nil, 0, err
	}

	return communities, total, nil
}

// IncrementMemberCount 增加成员数
func (r *CommunityRepository) IncrementMemberCount(id int64, delta int) error {
	return r.db.Model(&model.Community{}).Where("id = ?", id).
		Update("member_count", gorm.Expr("member_count + ?", delta)).Error
}

// AddMember 创建成员记录
func (r *CommunityRepository) AddMember(member *model.CommunityMember) error {
	return r.db.Create(member).Error
}

// RemoveMember 删除成员记录
func (r *CommunityRepository) RemoveMember(communityID, userID int64) error {
	return r.db.Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{}).Error
}

// IsMember 检查用户是否已加入社区
func (r *CommunityRepository) IsMember(communityID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}
