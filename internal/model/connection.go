package model

import "time"

// Connection 第三方平台连接（演示数据，不调真实API）
type Connection struct {
	UUIDBase
	UserID      string         `gorm:"size:36;not null;uniqueIndex:idx_user_platform" json:"user_id"`
	Platform    string         `gorm:"size:32;not null;uniqueIndex:idx_user_platform" json:"platform"`
	Connected   bool           `gorm:"default:false" json:"connected"`
	MockData    map[string]any `gorm:"serializer:json" json:"mock_data"`
	ConnectedAt *time.Time     `json:"connected_at"`
}

func (Connection) TableName() string {
	return "external_connections"
}
