package service

import (
	"math"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
)

// DashboardStats 仪表盘汇总
type DashboardStats struct {
	TotalXP          int     `json:"total_xp"`
	Level            int     `json:"level"`
	SkillsCompleted  int     `json:"skills_completed"`
	SkillsInProgress int     `json:"skills_in_progress"`
	TotalSkills      int     `json:"total_skills"`
	CompletionRate   float64 `json:"completion_rate"`
}

type DashboardService struct {
	skillRepo    *repository.SkillRepository
	progressRepo *repository.SkillProgressRepository
}

func NewDashboardService(skillRepo *repository.SkillRepository, progressRepo *repository.SkillProgressRepository) *DashboardService {
	return &DashboardService{
		skillRepo:    skillRepo,
		progressRepo: progressRepo,
	}
}

func (s *DashboardService) Stats(user *model.User) (*DashboardStats, error) {
	records, err := s.progressRepo.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}

	skills, err := s.skillRepo.FindAll()
	if err != nil {
		return nil, err
	}

	var completed, inProgress int
	for _, p := range records {
		switch p.Status {
		case model.StatusCompleted:
			completed++
		case model.StatusInProgress:
			inProgress++
		}
	}

	stats := &DashboardStats{
		TotalXP:          user.XP,
		Level:            user.Level,
		SkillsCompleted:  completed,
		SkillsInProgress: inProgress,
		TotalSkills:      len(skills),
	}
	if len(skills) > 0 {
		// 完成率保留一位小数
		rate := float64(completed) / float64(len(skills)) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}
	return stats, nil
}
