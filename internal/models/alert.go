package models

import (
	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
)

// Alert is a reminder a user wants to be shown at a specific date.
type Alert struct {
	DefaultModel
	UserID      uuid.UUID  `json:"userId" gorm:"type:char(36);index"`
	Message     string     `json:"message" gorm:"size:1024" example:"Pay the rent"`
	TriggerDate types.Date `json:"triggerDate" gorm:"index" swaggertype:"string" example:"2024-06-01"`
}
