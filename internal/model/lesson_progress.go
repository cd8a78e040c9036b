package model

import "time"

// swagger:model LessonProgress
type LessonProgress struct {
	UUIDBase
	UserID      string     `gorm:"size:36;not null;uniqueIndex:idx_user_lesson" json:"user_id"`
	LessonID    string     `gorm:"size:36;not null;uniqueIndex:idx_user_lesson" json:"lesson_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (LessonProgress) TableName() string {
	return "user_lesson_progress"
}
