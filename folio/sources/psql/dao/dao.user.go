package dao

import (
	"context"
	"errors"

	"folio/folio/sources/psql/models"

	"gorm.io/gorm"
)

type AdminUserDAO struct {
	DB *gorm.DB
}

func NewAdminUserDAO(db *gorm.DB) *AdminUserDAO {
	return &AdminUserDAO{DB: db}
}

func (dao *AdminUserDAO) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := dao.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *AdminUserDAO) Create(ctx context.Context, username, passwordHash string) (*models.AdminUser, error) {
	user := models.AdminUser{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := dao.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
