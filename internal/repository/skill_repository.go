package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) Create(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) FindByID(id string) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.Where("id = ?", id).First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// FindAll 按插入顺序返回全部技能
func (r *SkillRepository) FindAll() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Order("created_at ASC, id ASC").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Skill{}).Error
}
