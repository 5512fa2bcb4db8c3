package models

import (
	"fmt"

	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending limit a user sets for one month.
//
// There is at most one budget per user and month.
type Budget struct {
	DefaultModel
	UserID uuid.UUID       `json:"userId" gorm:"type:char(36);uniqueIndex:idx_budget_user_month"`
	Month  types.Month     `json:"month" gorm:"size:7;uniqueIndex:idx_budget_user_month" swaggertype:"string" example:"2024-05"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1500"`
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Amount.IsNegative() {
		return ErrAmountNegative
	}
	return nil
}

// BudgetForMonth returns the budget of the user for the month.
func BudgetForMonth(db *gorm.DB, userID uuid.UUID, month types.Month) (Budget, error) {
	var budget Budget
	err := db.
		Where("user_id = ? AND month = ?", userID, month).
		First(&budget).
		Error
	if err != nil {
		return Budget{}, fmt.Errorf("budget for %s: %w", month, err)
	}

	return budget, nil
}
