package service

import (
	"errors"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/util"

	"gorm.io/gorm"
)

// LessonWithProgress 课程附带当前用户的完成标记
type LessonWithProgress struct {
	model.Lesson
	Completed bool `json:"completed"`
}

type LessonService struct {
	skillRepo          *repository.SkillRepository
	lessonRepo         *repository.LessonRepository
	lessonProgressRepo *repository.LessonProgressRepository
}

func NewLessonService(skillRepo *repository.SkillRepository, lessonRepo *repository.LessonRepository, lessonProgressRepo *repository.LessonProgressRepository) *LessonService {
	return &LessonService{
		skillRepo:          skillRepo,
		lessonRepo:         lessonRepo,
		lessonProgressRepo: lessonProgressRepo,
	}
}

// ListForUser 按顺序返回技能下的课程并标记完成状态
func (s *LessonService) ListForUser(userID, skillID string) ([]LessonWithProgress, error) {
	if _, err := s.skillRepo.FindByID(skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	lessons, err := s.lessonRepo.FindBySkillID(skillID)
	if err != nil {
		return nil, err
	}

	records, err := s.lessonProgressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(records))
	for _, r := range records {
		if r.Completed {
			completed[r.LessonID] = true
		}
	}

	result := make([]LessonWithProgress, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, LessonWithProgress{
			Lesson:    lesson,
			Completed: completed[lesson.ID],
		})
	}
	return result, nil
}
