package models

import (
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Revenue is money a user received.
type Revenue struct {
	DefaultModel
	UserID uuid.UUID       `json:"userId" gorm:"type:char(36);index"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"2500"`
	Source string          `json:"source" gorm:"size:255" example:"Salary"`
	Date   types.Date      `json:"date" gorm:"index" swaggertype:"string" example:"2024-05-01"`
}

// BeforeSave sets the date to today if it is not set.
func (r *Revenue) BeforeSave(_ *gorm.DB) error {
	if r.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if r.Date.IsZero() {
		r.Date = types.DateOf(time.Now().In(time.UTC))
	}

	r.Source = strings.TrimSpace(r.Source)
	return nil
}
