package models

import (
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money a user spent.
type Expense struct {
	DefaultModel
	UserID      uuid.UUID       `json:"userId" gorm:"type:char(36);index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"42.5"`
	Description string          `json:"description" gorm:"size:255" example:"Weekly groceries"`
	CategoryID  *uuid.UUID      `json:"categoryId" gorm:"type:char(36);index" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`
	Category    *Category       `json:"-"`
	Date        types.Date      `json:"date" gorm:"index" swaggertype:"string" example:"2024-05-03"`
	Type        string          `json:"type" gorm:"size:64" example:"variable"`
	Tags        []Tag           `json:"tags" gorm:"many2many:expense_tags"`
}

// BeforeSave sets the date to today if it is not set.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if e.Date.IsZero() {
		e.Date = types.DateOf(time.Now().In(time.UTC))
	}

	if e.CategoryID != nil && *e.CategoryID == uuid.Nil {
		e.CategoryID = nil
	}

	e.Description = strings.TrimSpace(e.Description)
	return nil
}
