package service

import (
	"errors"
	"time"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/util"
	"skilltree_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompletionResult 完成技能后返回给前端的经验结算
type CompletionResult struct {
	XPEarned int `json:"xp_earned"`
	TotalXP  int `json:"total_xp"`
	Level    int `json:"level"`
}

type ProgressionService struct {
	skillRepo          *repository.SkillRepository
	lessonRepo         *repository.LessonRepository
	progressRepo       *repository.SkillProgressRepository
	lessonProgressRepo *repository.LessonProgressRepository
	userRepo           *repository.UserRepository
	strictProgress     bool
	logger             *zap.Logger
}

func NewProgressionService(
	skillRepo *repository.SkillRepository,
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.SkillProgressRepository,
	lessonProgressRepo *repository.LessonProgressRepository,
	userRepo *repository.UserRepository,
	strictProgress bool,
	logger *zap.Logger,
) *ProgressionService {
	return &ProgressionService{
		skillRepo:          skillRepo,
		lessonRepo:         lessonRepo,
		progressRepo:       progressRepo,
		lessonProgressRepo: lessonProgressRepo,
		userRepo:           userRepo,
		strictProgress:     strictProgress,
		logger:             logger,
	}
}

// SetStrictProgress 配置热更新入口
func (s *ProgressionService) SetStrictProgress(strict bool) {
	s.strictProgress = strict
}

// Start 开始学习一个技能。不校验前置是否完成，只要技能存在且未开始过。
func (s *ProgressionService) Start(userID, skillID string) (*model.SkillProgress, error) {
	if _, err := s.skillRepo.FindByID(skillID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	if _, err := s.progressRepo.FindByUserAndSkill(userID, skillID); err == nil {
		return nil, util.ErrAlreadyStarted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress := &model.SkillProgress{
		UserID:          userID,
		SkillID:         skillID,
		Status:          model.StatusInProgress,
		ProgressPercent: 0,
		StartedAt:       time.Now(),
	}
	if err := s.progressRepo.Create(progress); err != nil {
		// 并发重复 start 会撞唯一索引，归一为冲突
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyStarted
		}
		return nil, err
	}
	return progress, nil
}

// SetProgress 直接覆盖进度百分比。默认不钳位不保证单调，strict 模式下越界报错。
func (s *ProgressionService) SetProgress(userID, skillID string, percent int) (*model.SkillProgress, error) {
	if s.strictProgress && (percent < 0 || percent > 100) {
		return nil, util.ErrInvalidInput
	}

	progress, err := s.progressRepo.FindByUserAndSkill(userID, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	progress.ProgressPercent = percent
	if err := s.progressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteSkill 标记技能完成并结算经验
func (s *ProgressionService) CompleteSkill(userID, skillID string) (*CompletionResult, error) {
	skill, err := s.skillRepo.FindByID(skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	progress, err := s.progressRepo.FindByUserAndSkill(userID, skillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now()
	progress.Status = model.StatusCompleted
	progress.ProgressPercent = 100
	progress.CompletedAt = &now
	if err := s.progressRepo.Update(progress); err != nil {
		return nil, err
	}

	totalXP := user.XP + skill.XPValue
	newLevel := LevelForXP(totalXP)
	if err := s.userRepo.UpdateXPAndLevel(userID, totalXP, newLevel); err != nil {
		return nil, err
	}

	monitoring.SkillCompletions.Inc()
	s.logger.Info("skill completed",
		zap.String("user_id", userID),
		zap.String("skill_id", skillID),
		zap.Int("xp_earned", skill.XPValue),
		zap.Int("level", newLevel))

	return &CompletionResult{
		XPEarned: skill.XPValue,
		TotalXP:  totalXP,
		Level:    newLevel,
	}, nil
}

// CompleteLesson 完成课程并把技能进度更新为已完成课程占比（向下取整）。
// 重复完成只刷新时间戳。技能进度只在已有记录时回写，不会隐式创建。
func (s *ProgressionService) CompleteLesson(userID, lessonID string) (int, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrLessonNotFound
		}
		return 0, err
	}

	now := time.Now()
	record, err := s.lessonProgressRepo.FindByUserAndLesson(userID, lessonID)
	switch {
	case err == nil:
		record.Completed = true
		record.CompletedAt = &now
		if err := s.lessonProgressRepo.Save(record); err != nil {
			return 0, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = &model.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			Completed:   true,
			CompletedAt: &now,
		}
		if err := s.lessonProgressRepo.Create(record); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	percent, err := s.aggregateSkillPercent(userID, lesson.SkillID)
	if err != nil {
		return 0, err
	}

	progress, err := s.progressRepo.FindByUserAndSkill(userID, lesson.SkillID)
	if err == nil {
		progress.ProgressPercent = percent
		if err := s.progressRepo.Update(progress); err != nil {
			return 0, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	return percent, nil
}

// aggregateSkillPercent = floor(100 * 已完成课程数 / 课程总数)，无课程记 0
func (s *ProgressionService) aggregateSkillPercent(userID, skillID string) (int, error) {
	lessons, err := s.lessonRepo.FindBySkillID(skillID)
	if err != nil {
		return 0, err
	}
	if len(lessons) == 0 {
		return 0, nil
	}

	lessonIDs := make([]string, 0, len(lessons))
	for _, l := range lessons {
		lessonIDs = append(lessonIDs, l.ID)
	}
	done, err := s.lessonProgressRepo.CountCompleted(userID, lessonIDs)
	if err != nil {
		return 0, err
	}
	return int(done) * 100 / len(lessons), nil
}
