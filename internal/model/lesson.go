package model

// LessonResource 课程附带的外部资源链接
type LessonResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	SkillID       string           `gorm:"size:36;index;not null" json:"skill_id"`
	Title         string           `gorm:"size:200;not null" json:"title"`
	Content       string           `gorm:"type:text" json:"content"`
	Order         int              `gorm:"column:lesson_order;not null" json:"order"`
	EstimatedTime int              `json:"estimated_time"` // 分钟
	Resources     []LessonResource `gorm:"serializer:json" json:"resources"`
}

func (Lesson) TableName() string {
	return "lessons"
}
