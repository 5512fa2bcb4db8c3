// Package ledger computes balances, monthly totals and category
// breakdowns from the revenues and expenses of a user.
//
// Every computation is scoped to a single user and re-reads the
// store on each call.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// topCategoryCount is the number of categories shown on the dashboard.
const topCategoryCount = 5

var hundred = decimal.NewFromInt(100)

// Service computes statistics from the ledger store.
type Service struct {
	DB *gorm.DB

	// Now returns the current time. It determines the current month for the dashboard.
	Now func() time.Time
}

// New returns a Service using the wall clock.
func New(db *gorm.DB) *Service {
	return &Service{
		DB:  db,
		Now: time.Now,
	}
}

func (s *Service) db(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().In(time.UTC)
	}
	return s.Now().In(time.UTC)
}

// CurrentMonth returns the month the service considers current.
func (s *Service) CurrentMonth() types.Month {
	return types.MonthOf(s.now())
}

// CurrentBalance returns the sum of all revenues minus the sum of all
// expenses of the user.
func (s *Service) CurrentBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	db := s.db(ctx)

	revenue, err := models.SumRevenues(db, userID, models.AllTime)
	if err != nil {
		return decimal.Zero, err
	}

	expenses, err := models.SumExpenses(db, userID, models.AllTime)
	if err != nil {
		return decimal.Zero, err
	}

	return revenue.Sub(expenses), nil
}

// MonthlyStats returns the revenue and expense totals for a calendar month.
func (s *Service) MonthlyStats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (MonthlyStats, error) {
	db := s.db(ctx)
	m := types.NewMonth(year, month)
	window := models.MonthWindow(m)

	revenue, err := models.SumRevenues(db, userID, window)
	if err != nil {
		return MonthlyStats{}, err
	}

	expenses, err := models.SumExpenses(db, userID, window)
	if err != nil {
		return MonthlyStats{}, err
	}

	return MonthlyStats{
		Month:         m,
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		Balance:       revenue.Sub(expenses),
	}, nil
}

// CategoryStats returns the expense total and share per category for expenses
// between from and to, both inclusive. A nil bound leaves that side open.
//
// The result is sorted by descending total. Categories with the same total
// are sorted by name.
func (s *Service) CategoryStats(ctx context.Context, userID uuid.UUID, from, to *types.Date) ([]CategoryStats, error) {
	totals, err := models.ExpenseTotalsByCategory(s.db(ctx), userID, models.DateWindow(from, to))
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}

	stats := make([]CategoryStats, 0, len(totals))
	for _, t := range totals {
		percentage := decimal.Zero
		if !sum.IsZero() {
			percentage = t.Total.Mul(hundred).Div(sum)
		}

		stats = append(stats, CategoryStats{
			CategoryName: t.Name,
			TotalAmount:  t.Total,
			Percentage:   percentage,
		})
	}

	sortCategoryStats(stats)
	return stats, nil
}

// sortCategoryStats sorts by descending total, then by name.
func sortCategoryStats(stats []CategoryStats) {
	// Collators are not safe for concurrent use
	c := collate.New(language.Und)

	slices.SortFunc(stats, func(a, b CategoryStats) int {
		if n := b.TotalAmount.Cmp(a.TotalAmount); n != 0 {
			return n
		}

		if n := c.CompareString(a.CategoryName, b.CategoryName); n != 0 {
			return n
		}

		return strings.Compare(a.CategoryName, b.CategoryName)
	})
}

// Dashboard summarizes the current month for the user.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (DashboardStats, error) {
	now := s.now()
	month := types.MonthOf(now)

	monthlyBudget := decimal.Zero
	budget, err := models.BudgetForMonth(s.db(ctx), userID, month)
	if err == nil {
		monthlyBudget = budget.Amount
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		return DashboardStats{}, err
	}

	monthly, err := s.MonthlyStats(ctx, userID, month.Year(), month.Month())
	if err != nil {
		return DashboardStats{}, err
	}

	from := types.NewDate(month.Year(), month.Month(), 1)
	today := types.DateOf(now)
	categories, err := s.CategoryStats(ctx, userID, &from, &today)
	if err != nil {
		return DashboardStats{}, err
	}

	balance, err := s.CurrentBalance(ctx, userID)
	if err != nil {
		return DashboardStats{}, err
	}

	if len(categories) > topCategoryCount {
		categories = categories[:topCategoryCount]
	}

	return DashboardStats{
		CurrentBalance:         balance,
		MonthlyBudget:          monthlyBudget,
		BudgetRemaining:        monthlyBudget.Sub(monthly.TotalExpenses),
		TotalExpensesThisMonth: monthly.TotalExpenses,
		TotalRevenueThisMonth:  monthly.TotalRevenue,
		TopCategories:          categories,
	}, nil
}

// UpsertBudget sets the budget of the user for the month. If a budget for the month
// exists, its amount is overwritten. Otherwise, a new budget is created.
//
// created reports whether a new budget was created.
func (s *Service) UpsertBudget(ctx context.Context, userID uuid.UUID, month types.Month, amount decimal.Decimal) (budget models.Budget, created bool, err error) {
	if amount.IsNegative() {
		return models.Budget{}, false, models.ErrAmountNegative
	}

	upsert := func(tx *gorm.DB) error {
		budget, created, err = upsertBudget(tx, userID, month, amount)
		return err
	}

	err = s.db(ctx).Transaction(upsert)

	// A concurrent request created the budget between our lookup and insert.
	// The unique index rejected the second row, so the budget now exists and
	// is updated.
	if errors.Is(err, models.ErrBudgetMonthNotUnique) {
		err = s.db(ctx).Transaction(upsert)
	}

	if err != nil {
		return models.Budget{}, false, fmt.Errorf("setting budget for %s: %w", month, err)
	}

	return budget, created, nil
}

func upsertBudget(tx *gorm.DB, userID uuid.UUID, month types.Month, amount decimal.Decimal) (models.Budget, bool, error) {
	budget, err := models.BudgetForMonth(tx, userID, month)
	if err == nil {
		err = tx.Model(&budget).Update("amount", amount).Error
		if err != nil {
			return models.Budget{}, false, err
		}

		budget.Amount = amount
		return budget, false, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Budget{}, false, err
	}

	budget = models.Budget{
		UserID: userID,
		Month:  month,
		Amount: amount,
	}

	if err := tx.Create(&budget).Error; err != nil {
		return models.Budget{}, false, err
	}

	return budget, true, nil
}
