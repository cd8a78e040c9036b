package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type ConnectionRepository struct {
	DB *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{DB: db}
}

func (r *ConnectionRepository) FindByUserID(userID string) ([]model.Connection, error) {
	var connections []model.Connection
	err := r.DB.Where("user_id = ?", userID).Find(&connections).Error
	return connections, err
}

func (r *ConnectionRepository) FindByUserAndPlatform(userID, platform string) (*model.Connection, error) {
	var connection model.Connection
	err := r.DB.Where("user_id = ? AND platform = ?", userID, platform).First(&connection).Error
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

func (r *ConnectionRepository) Save(connection *model.Connection) error {
	return r.DB.Save(connection).Error
}
