package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByToken(token string) (*model.Session, error) {
	var session model.Session
	err := r.DB.Where("session_token = ?", token).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) DeleteByToken(token string) error {
	return r.DB.Where("session_token = ?", token).Delete(&model.Session{}).Error
}

// DeleteExpired 懒惰过期之外的补充清理，由后台任务调用
func (r *SessionRepository) DeleteExpired() error {
	return r.DB.Where("expires_at < NOW()").Delete(&model.Session{}).Error
}
