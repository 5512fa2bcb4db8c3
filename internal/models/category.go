package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category groups expenses. Categories are shared between all users.
type Category struct {
	DefaultModel
	Name string `json:"name" gorm:"size:255;uniqueIndex" example:"Groceries"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// Tag is a free form label for expenses.
type Tag struct {
	DefaultModel
	Name string `json:"name" gorm:"size:255" example:"vacation"`
}

func (t *Tag) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	return nil
}
