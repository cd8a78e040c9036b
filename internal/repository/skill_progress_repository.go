package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type SkillProgressRepository struct {
	DB *gorm.DB
}

func NewSkillProgressRepository(db *gorm.DB) *SkillProgressRepository {
	return &SkillProgressRepository{DB: db}
}

func (r *SkillProgressRepository) Create(progress *model.SkillProgress) error {
	return r.DB.Create(progress).Error
}

func (r *SkillProgressRepository) FindByUserAndSkill(userID, skillID string) (*model.SkillProgress, error) {
	var progress model.SkillProgress
	err := r.DB.Where("user_id = ? AND skill_id = ?", userID, skillID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *SkillProgressRepository) FindByUserID(userID string) ([]model.SkillProgress, error) {
	var records []model.SkillProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

// FindCompletedByUserID 按完成时间倒序
func (r *SkillProgressRepository) FindCompletedByUserID(userID string, limit int) ([]model.SkillProgress, error) {
	var records []model.SkillProgress
	q := r.DB.Where("user_id = ? AND status = ?", userID, model.StatusCompleted).
		Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&records).Error
	return records, err
}

func (r *SkillProgressRepository) Update(progress *model.SkillProgress) error {
	return r.DB.Save(progress).Error
}

func (r *SkillProgressRepository) UpdatePercent(id string, percent int) error {
	return r.DB.Model(&model.SkillProgress{}).
		Where("id = ?", id).
		Update("progress_percent", percent).
		Error
}
