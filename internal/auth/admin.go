// Package auth resolves moderator credentials to an admin id. It is
// deliberately thin: route protection is the admin-token middleware's job,
// this only answers "which admin is acting".
package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sujalbistaa/feedhub/internal/models"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so
// the response does not reveal which.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AdminStore checks moderator logins against the admin_users table.
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// VerifyLogin returns the matching admin account and touches last_login.
func (s *AdminStore) VerifyLogin(email, password string) (models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AdminUser{}, ErrInvalidCredentials
		}
		return models.AdminUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return models.AdminUser{}, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(&admin).Update("last_login", now).Error; err != nil {
		return models.AdminUser{}, err
	}
	admin.LastLogin = &now
	return admin, nil
}

// Create registers a moderator account with a bcrypt-hashed password.
func (s *AdminStore) Create(email, username, password string) (models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.AdminUser{}, err
	}
	admin := models.AdminUser{Email: email, Username: username, PasswordHash: string(hash)}
	if err := s.db.Create(&admin).Error; err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}
