package dao

import (
	"context"
	"errors"

	"folio/folio/sources/psql/models"

	"gorm.io/gorm"
)

type ContactMessageDAO struct {
	DB *gorm.DB
}

func NewContactMessageDAO(db *gorm.DB) *ContactMessageDAO {
	return &ContactMessageDAO{DB: db}
}

func (dao *ContactMessageDAO) Create(ctx context.Context, msg *models.ContactMessage) error {
	return dao.DB.WithContext(ctx).Create(msg).Error
}

func (dao *ContactMessageDAO) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := dao.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListAfter returns messages with an ID greater than afterID, oldest first.
// The mail watcher polls with this to pick up new submissions.
func (dao *ContactMessageDAO) ListAfter(ctx context.Context, afterID uint) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := dao.DB.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// LatestID seeds the watcher so only messages created after startup notify.
func (dao *ContactMessageDAO) LatestID(ctx context.Context) (uint, error) {
	var msg models.ContactMessage
	err := dao.DB.WithContext(ctx).Order("id DESC").First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}
