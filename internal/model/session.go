package model

import "time"

// Session provider 登录产生的服务端会话；Bearer Token 无状态，不落库
type Session struct {
	UUIDBase
	UserID       string    `gorm:"size:36;index;not null" json:"user_id"`
	SessionToken string    `gorm:"size:255;unique;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
}

func (Session) TableName() string {
	return "user_sessions"
}
