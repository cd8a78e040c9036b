package model

type AuthMode string

const (
	AuthModeToken    AuthMode = "token"
	AuthModeProvider AuthMode = "provider"
)

// swagger:model User
type User struct {
	UUIDBase
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100" json:"-"` // provider 登录的用户没有密码
	Picture  string   `gorm:"size:255" json:"picture,omitempty"`
	XP       int      `gorm:"default:0" json:"xp"`
	Level    int      `gorm:"default:1" json:"level"`
	Admin    bool     `gorm:"default:false" json:"isAdmin"`
	AuthMode AuthMode `gorm:"type:varchar(16);default:'token'" json:"-"`
}

func (User) TableName() string {
	return "users"
}
