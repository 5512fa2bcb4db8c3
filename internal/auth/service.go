// Package auth manages users, their passwords and login sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service registers users and issues sessions.
type Service struct {
	DB  *gorm.DB
	TTL time.Duration

	// Now returns the current time. It is used for session expiry.
	Now func() time.Time
}

// New returns a Service issuing sessions valid for ttl.
func New(db *gorm.DB, ttl time.Duration) *Service {
	return &Service{
		DB:  db,
		TTL: ttl,
		Now: time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().In(time.UTC)
	}
	return s.Now().In(time.UTC)
}

// Register creates a new user.
func (s *Service) Register(ctx context.Context, name, email, password string) (models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	err = s.DB.WithContext(ctx).Create(&user).Error
	if err != nil {
		return models.User{}, err
	}

	log.Info().Str("user", user.ID.String()).Msg("registered user")
	return user, nil
}

// Login verifies the credentials and starts a new session.
func (s *Service) Login(ctx context.Context, email, password string) (models.Session, models.User, error) {
	db := s.DB.WithContext(ctx)

	var user models.User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Session{}, models.User{}, ErrInvalidCredentials
	} else if err != nil {
		return models.Session{}, models.User{}, err
	}

	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return models.Session{}, models.User{}, err
	}

	// Sessions that expired without being used again are removed here
	err = db.Unscoped().
		Where("user_id = ? AND expires_at <= ?", user.ID, s.now()).
		Delete(&models.Session{}).
		Error
	if err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("could not delete expired sessions")
	}

	token, err := newToken()
	if err != nil {
		return models.Session{}, models.User{}, err
	}

	session := models.Session{
		UserID:    user.ID,
		Token:     token,
		TokenHash: hashToken(token),
		ExpiresAt: s.now().Add(s.TTL),
	}

	if err := db.Create(&session).Error; err != nil {
		return models.Session{}, models.User{}, err
	}

	return session, user, nil
}

// Authenticate returns the user the session token belongs to.
//
// Expired sessions are deleted.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrUnauthorized
	}

	db := s.DB.WithContext(ctx)

	var session models.Session
	err := db.Where("token_hash = ?", hashToken(token)).First(&session).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.User{}, ErrUnauthorized
	} else if err != nil {
		return models.User{}, err
	}

	if session.Expired(s.now()) {
		if err := db.Unscoped().Delete(&session).Error; err != nil {
			log.Error().Err(err).Str("session", session.ID.String()).Msg("could not delete expired session")
		}
		return models.User{}, ErrUnauthorized
	}

	var user models.User
	err = db.First(&user, "id = ?", session.UserID).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.User{}, ErrUnauthorized
	} else if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Logout ends the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	err := s.DB.WithContext(ctx).
		Unscoped().
		Where("token_hash = ?", hashToken(token)).
		Delete(&models.Session{}).
		Error
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
