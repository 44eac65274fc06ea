package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Create 创建投票记录
func (r *VoteRepository) Create(vote *model.Vote) error {
	return r.db.Create(vote).Error
}

// Delete 删除用户对某目标的投票
func (r *VoteRepository) Delete(userID int64, targetType string, targetID int64) error {
	return r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&model.Vote{}).Error
}

// Get 获取用户对某目标的投票，不存在返回 nil
func (r *VoteRepository) Get(userID int64, targetType string, targetID int64) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// CountByValue 统计某目标指定方向的票数
func (r *VoteRepository) CountByValue(targetType string, targetID int64, value int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Vote{}).
		Where("target_type = ? AND target_id = ? AND value = ?", targetType, targetID, value).
		Count(&count).Error
	return count, err
}

// Score 计算某目标的净得分（赞数减踩数）
func (r *VoteRepository) Score(targetType string, targetID int64) (int, error) {
	ups, err := r.CountByValue(targetType, targetID, model.VoteValueUp)
	if err != nil {
		return 0, err
	}
	downs, err := r.CountByValue(targetType, targetID, model.VoteValueDown)
	if err != nil {
		return 0, err
	}
	return int(ups - downs), nil
}

// GetUserVotes 批量获取用户对一组目标的投票
func (r *VoteRepository) GetUserVotes(userID int64, targetType string, targetIDs []int64) (map[int64]int, error) {
	if len(targetIDs) == 0 {
		return map[int64]int{}, nil
	}

	var votes []*model.Vote
	err := r.db.Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]int, len(votes))
	for _, v := range votes {
		result[v.TargetID] = v.Value
	}
	return result, nil
}

// DeleteByTargets 删除一组目标上的所有投票（目标被级联删除时清理）
func (r *VoteRepository) DeleteByTargets(targetType string, targetIDs []int64) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&model.Vote{}).Error
}
