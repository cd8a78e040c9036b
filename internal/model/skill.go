package model

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Position 技能树可视化坐标，仅用于前端展示
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// swagger:model Skill
type Skill struct {
	UUIDBase
	Name          string     `gorm:"size:100;not null" json:"name"`
	Description   string     `gorm:"size:500" json:"description"`
	Category      string     `gorm:"size:100;index" json:"category"`
	Difficulty    Difficulty `gorm:"type:varchar(16)" json:"difficulty"`
	Prerequisites []string   `gorm:"serializer:json" json:"prerequisites"`
	XPValue       int        `gorm:"not null" json:"xp_value"`
	Icon          string     `gorm:"size:50" json:"icon"`
	Position      Position   `gorm:"serializer:json" json:"position"`
}

func (Skill) TableName() string {
	return "skills"
}
