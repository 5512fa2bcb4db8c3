package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server side login session, identified by an opaque bearer token.
//
// Only the SHA256 hash of the token is stored. Token is set on the session
// returned by a login and empty for sessions read from the database.
type Session struct {
	DefaultModel
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);index"`
	Token     string    `json:"-" gorm:"-"`
	TokenHash string    `json:"-" gorm:"size:64;uniqueIndex"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at t.
func (s Session) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
