// folio/controllers/messages.go
package controllers

import (
	"context"
	"errors"
	"strings"

	"folio/folio/sources/psql/dao"
	"folio/folio/sources/psql/models"
	"folio/folio/utils/types"
)

var ErrInvalidContact = errors.New("name, email and message are required")

type ContactController struct {
	dao *dao.ContactMessageDAO
}

func NewContactController(messageDAO *dao.ContactMessageDAO) *ContactController {
	return &ContactController{dao: messageDAO}
}

func (c *ContactController) Create(ctx context.Context, req types.ContactRequest) (*models.ContactMessage, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	body := strings.TrimSpace(req.Message)
	if name == "" || email == "" || body == "" {
		return nil, ErrInvalidContact
	}
	msg := models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: strings.TrimSpace(req.Subject),
		Message: body,
	}
	if err := c.dao.Create(ctx, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *ContactController) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return c.dao.List(ctx, limit)
}
