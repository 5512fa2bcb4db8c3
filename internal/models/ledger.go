package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// amountScale is the number of decimal places amounts are stored with.
const amountScale = 8

// CategoryTotal is the sum of expenses for one category.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// SumRevenues returns the sum of all revenues of the user in the window.
func SumRevenues(db *gorm.DB, userID uuid.UUID, window Window) (decimal.Decimal, error) {
	sum, err := sumAmount(db.Model(&Revenue{}), "revenues", userID, window)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing revenues: %w", err)
	}

	return sum, nil
}

// SumExpenses returns the sum of all expenses of the user in the window.
func SumExpenses(db *gorm.DB, userID uuid.UUID, window Window) (decimal.Decimal, error) {
	sum, err := sumAmount(db.Model(&Expense{}), "expenses", userID, window)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing expenses: %w", err)
	}

	return sum, nil
}

func sumAmount(q *gorm.DB, table string, userID uuid.UUID, window Window) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := q.
		Select(fmt.Sprintf("SUM(%s.amount)", table)).
		Where(fmt.Sprintf("%s.user_id = ?", table), userID).
		Scopes(window.Scope(table + ".date")).
		Find(&sum).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no rows are found, the value is nil
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal.Round(amountScale), nil
}

// ExpenseTotalsByCategory sums the expenses of the user in the window, grouped by
// category name. Expenses without a category are not included.
//
// The order of the result is not defined.
func ExpenseTotalsByCategory(db *gorm.DB, userID uuid.UUID, window Window) ([]CategoryTotal, error) {
	var totals []CategoryTotal

	err := db.
		Model(&Expense{}).
		Select("categories.name AS name, SUM(expenses.amount) AS total").
		Joins("JOIN categories ON categories.id = expenses.category_id AND categories.deleted_at IS NULL").
		Where("expenses.user_id = ?", userID).
		Scopes(window.Scope("expenses.date")).
		Group("categories.name").
		Find(&totals).
		Error
	if err != nil {
		return nil, fmt.Errorf("summing expenses by category: %w", err)
	}

	for i := range totals {
		totals[i].Total = totals[i].Total.Round(amountScale)
	}

	return totals, nil
}
