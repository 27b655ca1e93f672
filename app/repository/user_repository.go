package repository

import (
	"gorm.io/gorm"

	"github.com/framelessmedia/payportal/app/models"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	return models.FindUserByID(r.db, id)
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
