package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type LessonProgressRepository struct {
	DB *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{DB: db}
}

func (r *LessonProgressRepository) FindByUserAndLesson(userID, lessonID string) (*model.LessonProgress, error) {
	var record model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *LessonProgressRepository) FindByUserID(userID string) ([]model.LessonProgress, error) {
	var records []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *LessonProgressRepository) Save(record *model.LessonProgress) error {
	return r.DB.Save(record).Error
}

func (r *LessonProgressRepository) Create(record *model.LessonProgress) error {
	return r.DB.Create(record).Error
}

// CountCompleted 统计某技能下该用户已完成的课程数
func (r *LessonProgressRepository) CountCompleted(userID string, lessonIDs []string) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND completed = ?", userID, lessonIDs, true).
		Count(&count).Error
	return count, err
}
