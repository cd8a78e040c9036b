package service

import (
	"errors"
	"time"

	"skilltree_backend/internal/model"
	"skilltree_backend/internal/repository"
	"skilltree_backend/internal/util"

	"gorm.io/gorm"
)

var supportedPlatforms = []string{"github", "linkedin", "youtube"}

// 接入平台后返回的演示数据，真实抓取不在本服务范围内
var platformMockData = map[string]map[string]any{
	"github": {
		"repos":              15,
		"commits_this_month": 42,
		"languages":          []string{"Python", "JavaScript", "TypeScript"},
	},
	"linkedin": {
		"connections":       350,
		"skills_endorsed":   []string{"Web Development", "React", "Python"},
		"courses_completed": 8,
	},
	"youtube": {
		"subscribed_channels": 25,
		"learning_playlists":  12,
		"watch_time_hours":    156,
	},
}

type IntegrationService struct {
	connectionRepo *repository.ConnectionRepository
}

func NewIntegrationService(connectionRepo *repository.ConnectionRepository) *IntegrationService {
	return &IntegrationService{connectionRepo: connectionRepo}
}

// List 返回全部平台的接入状态，未接入的补空占位
func (s *IntegrationService) List(userID string) ([]model.Connection, error) {
	connections, err := s.connectionRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	byPlatform := make(map[string]*model.Connection, len(connections))
	for i := range connections {
		byPlatform[connections[i].Platform] = &connections[i]
	}

	result := make([]model.Connection, 0, len(supportedPlatforms))
	for _, platform := range supportedPlatforms {
		if conn, ok := byPlatform[platform]; ok {
			result = append(result, *conn)
			continue
		}
		placeholder := model.Connection{
			UserID:    userID,
			Platform:  platform,
			Connected: false,
		}
		placeholder.ID = model.GenerateUUID()
		result = append(result, placeholder)
	}
	return result, nil
}

// Connect 接入平台，重复接入覆盖数据并刷新时间
func (s *IntegrationService) Connect(userID, platform string) (map[string]any, error) {
	data, ok := platformMockData[platform]
	if !ok {
		return nil, util.ErrInvalidInput
	}

	now := time.Now()
	conn, err := s.connectionRepo.FindByUserAndPlatform(userID, platform)
	switch {
	case err == nil:
		conn.Connected = true
		conn.MockData = data
		conn.ConnectedAt = &now
	case errors.Is(err, gorm.ErrRecordNotFound):
		conn = &model.Connection{
			UserID:      userID,
			Platform:    platform,
			Connected:   true,
			MockData:    data,
			ConnectedAt: &now,
		}
	default:
		return nil, err
	}

	if err := s.connectionRepo.Save(conn); err != nil {
		return nil, err
	}
	return data, nil
}

// Sync 同步已接入平台的数据，未接入报错
func (s *IntegrationService) Sync(userID, platform string) (map[string]any, error) {
	conn, err := s.connectionRepo.FindByUserAndPlatform(userID, platform)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidInput
		}
		return nil, err
	}
	if !conn.Connected {
		return nil, util.ErrInvalidInput
	}
	return conn.MockData, nil
}
