package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("id = ?", id).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindBySkillID 技能下的课程，按 order 排序，平局按创建顺序保证稳定
func (r *LessonRepository) FindBySkillID(skillID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("skill_id = ?", skillID).
		Order("lesson_order ASC, created_at ASC, id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) CountBySkillID(skillID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("skill_id = ?", skillID).Count(&count).Error
	return count, err
}
