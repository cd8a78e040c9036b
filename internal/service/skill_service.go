package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	skillListCacheKey = "skilltree:skills"
	skillListCacheTTL = 5 * time.Minute
)

// SkillWithState 技能加上针对当前用户推导出的状态
type SkillWithState struct {
	model.Skill
	Status          model.SkillStatus `json:"status"`
	ProgressPercent int               `json:"progress_percent"`
}

type SkillService struct {
	skillRepo    *repository.SkillRepository
	progressRepo *repository.SkillProgressRepository
	redisClient  *redis.Client
	logger       *zap.Logger
}

func NewSkillService(skillRepo *repository.SkillRepository, progressRepo *repository.SkillProgressRepository, redisClient *redis.Client, logger *zap.Logger) *SkillService {
	return &SkillService{
		skillRepo:    skillRepo,
		progressRepo: progressRepo,
		redisClient:  redisClient,
		logger:       logger,
	}
}

// ListForUser 返回全部技能并为每个技能推导用户可见状态
func (s *SkillService) ListForUser(ctx context.Context, userID string) ([]SkillWithState, error) {
	skills, err := s.loadSkills(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	progressBySkill := make(map[string]*model.SkillProgress, len(records))
	for i := range records {
		progressBySkill[records[i].SkillID] = &records[i]
	}

	result := make([]SkillWithState, 0, len(skills))
	for _, skill := range skills {
		state := SkillWithState{Skill: skill}
		state.Status = StateFor(&skill, progressBySkill)
		if p, ok := progressBySkill[skill.ID]; ok {
			state.ProgressPercent = p.ProgressPercent
		}
		result = append(result, state)
	}
	return result, nil
}

// ListAll 原始技能数据，管理端用，不走缓存
func (s *SkillService) ListAll() ([]model.Skill, error) {
	return s.skillRepo.FindAll()
}

func (s *SkillService) GetByID(id string) (*model.Skill, error) {
	skill, err := s.skillRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	return skill, nil
}

func (s *SkillService) Create(ctx context.Context, skill *model.Skill) error {
	if err := s.skillRepo.Create(skill); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *SkillService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.skillRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// StateFor 推导单个技能的状态：已有记录以记录为准，否则只检查直接前置
func StateFor(skill *model.Skill, progressBySkill map[string]*model.SkillProgress) model.SkillStatus {
	if p, ok := progressBySkill[skill.ID]; ok {
		return p.Status
	}
	for _, prereqID := range skill.Prerequisites {
		p, ok := progressBySkill[prereqID]
		if !ok || p.Status != model.StatusCompleted {
			return model.StatusLocked
		}
	}
	return model.StatusAvailable
}

// loadSkills 技能列表读多写少，走 Redis 缓存
func (s *SkillService) loadSkills(ctx context.Context) ([]model.Skill, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, skillListCacheKey).Bytes()
		if err == nil {
			var skills []model.Skill
			if err := json.Unmarshal(cached, &skills); err == nil {
				return skills, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("skill cache read failed", zap.Error(err))
		}
	}

	skills, err := s.skillRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(skills); err == nil {
			if err := s.redisClient.Set(ctx, skillListCacheKey, data, skillListCacheTTL).Err(); err != nil {
				s.logger.Warn("skill cache write failed", zap.Error(err))
			}
		}
	}
	return skills, nil
}

func (s *SkillService) invalidateCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, skillListCacheKey).Err(); err != nil {
		s.logger.Warn("skill cache invalidate failed", zap.Error(err))
	}
}
