package repository

import (
	"skilltree_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// UpdateXPAndLevel 完成技能后写回经验与等级
func (r *UserRepository) UpdateXPAndLevel(userID string, xp, level int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"xp": xp, "level": level}).
		Error
}

func (r *UserRepository) SetAdmin(userID string, admin bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("admin", admin).
		Error
}
