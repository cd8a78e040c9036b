package model

import "time"

type SkillStatus string

const (
	// Locked / Available 是派生状态，不落库；库里只有已开始之后的两种
	StatusLocked     SkillStatus = "locked"
	StatusAvailable  SkillStatus = "available"
	StatusInProgress SkillStatus = "in_progress"
	StatusCompleted  SkillStatus = "completed"
)

// swagger:model SkillProgress
type SkillProgress struct {
	UUIDBase
	UserID          string      `gorm:"size:36;not null;uniqueIndex:idx_user_skill" json:"user_id"`
	SkillID         string      `gorm:"size:36;not null;uniqueIndex:idx_user_skill" json:"skill_id"`
	Status          SkillStatus `gorm:"type:varchar(16);not null" json:"status"`
	ProgressPercent int         `gorm:"default:0" json:"progress_percent"`
	StartedAt       time.Time   `json:"started_at"`
	CompletedAt     *time.Time  `json:"completed_at"`
}

func (SkillProgress) TableName() string {
	return "user_skill_progress"
}
