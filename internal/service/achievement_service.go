package service

import (
	"strconv"
	"time"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
)

// Achievement 成就为纯推导视图，每次请求重新计算，不落库
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
}

// ActivityItem 最近完成的技能动态
type ActivityItem struct {
	Icon        string    `json:"icon"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

const activityFeedLimit = 10

type AchievementService struct {
	skillRepo    *repository.SkillRepository
	progressRepo *repository.SkillProgressRepository
}

func NewAchievementService(skillRepo *repository.SkillRepository, progressRepo *repository.SkillProgressRepository) *AchievementService {
	return &AchievementService{
		skillRepo:    skillRepo,
		progressRepo: progressRepo,
	}
}

// Evaluate 根据已完成技能数、等级和涉猎的分类数评估全部成就。
// 已锁定的也一并返回，前端负责置灰。
func (s *AchievementService) Evaluate(user *model.User) ([]Achievement, error) {
	completed, err := s.progressRepo.FindCompletedByUserID(user.ID, 0)
	if err != nil {
		return nil, err
	}

	skills, err := s.skillRepo.FindAll()
	if err != nil {
		return nil, err
	}
	skillByID := make(map[string]*model.Skill, len(skills))
	for i := range skills {
		skillByID[skills[i].ID] = &skills[i]
	}

	completedCount := len(completed)
	categories := make(map[string]struct{})
	for _, p := range completed {
		if skill, ok := skillByID[p.SkillID]; ok {
			categories[skill.Category] = struct{}{}
		}
	}

	return []Achievement{
		{ID: "first_skill", Name: "First Steps", Description: "Complete your first skill", Icon: "Star", Unlocked: completedCount >= 1},
		{ID: "three_skills", Name: "On a Roll", Description: "Complete 3 skills", Icon: "Flame", Unlocked: completedCount >= 3},
		{ID: "five_skills", Name: "High Five", Description: "Complete 5 skills", Icon: "Award", Unlocked: completedCount >= 5},
		{ID: "ten_skills", Name: "Unstoppable", Description: "Complete 10 skills", Icon: "Trophy", Unlocked: completedCount >= 10},
		{ID: "level_five", Name: "Rising Star", Description: "Reach level 5", Icon: "Crown", Unlocked: user.Level >= 5},
		{ID: "three_categories", Name: "Explorer", Description: "Complete skills in 3 different categories", Icon: "Compass", Unlocked: len(categories) >= 3},
	}, nil
}

// ActivityFeed 最近 10 条完成记录，按完成时间倒序。
// 技能在完成后被删除的，静默跳过。
func (s *AchievementService) ActivityFeed(userID string) ([]ActivityItem, error) {
	completed, err := s.progressRepo.FindCompletedByUserID(userID, activityFeedLimit)
	if err != nil {
		return nil, err
	}

	skills, err := s.skillRepo.FindAll()
	if err != nil {
		return nil, err
	}
	skillByID := make(map[string]*model.Skill, len(skills))
	for i := range skills {
		skillByID[skills[i].ID] = &skills[i]
	}

	feed := make([]ActivityItem, 0, len(completed))
	for _, p := range completed {
		skill, ok := skillByID[p.SkillID]
		if !ok {
			continue
		}
		item := ActivityItem{
			Icon:        "CheckCircle",
			Title:       "Completed " + skill.Name,
			Description: "Earned " + strconv.Itoa(skill.XPValue) + " XP",
		}
		if p.CompletedAt != nil {
			item.Timestamp = *p.CompletedAt
		}
		feed = append(feed, item)
	}
	return feed, nil
}
