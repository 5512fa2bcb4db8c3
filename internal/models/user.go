package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is an account holder. All ledger rows are owned by exactly one user.
type User struct {
	DefaultModel
	Name         string `json:"name" gorm:"size:255" example:"Jane Doe"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex" example:"jane@example.com"`
	PasswordHash string `json:"-" gorm:"size:255"`
}

// BeforeSave normalizes the email address so that lookups are case insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	return nil
}
