// folio/controllers/auth.go
package controllers

import (
	"context"
	"errors"
	"time"

	"folio/folio/config"
	"folio/folio/sources/psql/dao"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthController struct {
	userDAO *dao.AdminUserDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.AdminUserDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		cfg:     cfg,
	}
}

// Login checks the password against the stored bcrypt hash and issues a
// 24h admin token. Unknown user and wrong password are indistinguishable.
func (c *AuthController) Login(ctx context.Context, username, password string) (string, error) {
	user, err := c.userDAO.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}
