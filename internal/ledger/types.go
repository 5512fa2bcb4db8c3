package ledger

import (
	"github.com/budgetwise/backend/internal/types"
	"github.com/shopspring/decimal"
)

// MonthlyStats are the revenue and expense totals of one month.
type MonthlyStats struct {
	Month         types.Month     `json:"month" swaggertype:"string" example:"2024-05"` // The month the totals are for
	TotalRevenue  decimal.Decimal `json:"totalRevenue" example:"3200"`                  // Sum of all revenues in the month
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"1850.42"`              // Sum of all expenses in the month
	Balance       decimal.Decimal `json:"balance" example:"1349.58"`                    // totalRevenue - totalExpenses
}

// CategoryStats is the share of one category in the expenses of a time range.
type CategoryStats struct {
	CategoryName string          `json:"categoryName" example:"Groceries"` // Name of the category
	TotalAmount  decimal.Decimal `json:"totalAmount" example:"420.5"`      // Sum of the expenses in the category
	Percentage   decimal.Decimal `json:"percentage" example:"22.72"`       // Share of the category in all categorized expenses, in percent
}

// DashboardStats summarizes the financial state of a user for the current month.
type DashboardStats struct {
	CurrentBalance         decimal.Decimal `json:"currentBalance" example:"10432.17"`        // All-time revenues minus all-time expenses
	MonthlyBudget          decimal.Decimal `json:"monthlyBudget" example:"2000"`             // Budget for the current month, 0 if none is set
	BudgetRemaining        decimal.Decimal `json:"budgetRemaining" example:"149.58"`         // monthlyBudget - totalExpensesThisMonth
	TotalExpensesThisMonth decimal.Decimal `json:"totalExpensesThisMonth" example:"1850.42"` // Sum of all expenses in the current month
	TotalRevenueThisMonth  decimal.Decimal `json:"totalRevenueThisMonth" example:"3200"`     // Sum of all revenues in the current month
	TopCategories          []CategoryStats `json:"topCategories"`                            // The categories with the highest expenses this month, at most 5
}
