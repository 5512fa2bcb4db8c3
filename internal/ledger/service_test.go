package ledger_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/budgetwise/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCurrentBalanceWithoutRows() {
	balance, err := suite.service.CurrentBalance(context.Background(), suite.createTestUser())
	suite.Require().Nil(err)
	suite.assertDecimal("0", balance)
}

func (suite *TestSuiteStandard) TestCurrentBalance() {
	user := suite.createTestUser()
	other := suite.createTestUser()

	suite.createTestRevenue(user, "1000", types.NewDate(2023, 1, 1))
	suite.createTestExpense(user, "300", types.NewDate(2024, 5, 1), nil)

	// Rows of other users and future rows
	suite.createTestRevenue(other, "5000", types.NewDate(2024, 5, 1))
	suite.createTestExpense(other, "12", types.NewDate(2024, 5, 1), nil)
	suite.createTestExpense(user, "0.5", types.NewDate(2030, 1, 1), nil)

	balance, err := suite.service.CurrentBalance(context.Background(), user)
	suite.Require().Nil(err)
	suite.assertDecimal("699.5", balance)
}

func (suite *TestSuiteStandard) TestCurrentBalanceNegative() {
	user := suite.createTestUser()
	suite.createTestExpense(user, "25.75", types.NewDate(2024, 5, 1), nil)

	balance, err := suite.service.CurrentBalance(context.Background(), user)
	suite.Require().Nil(err)
	suite.assertDecimal("-25.75", balance)
}

func (suite *TestSuiteStandard) TestMonthlyStats() {
	user := suite.createTestUser()
	other := suite.createTestUser()

	// Adjacent months are excluded even when close
	suite.createTestRevenue(user, "111", types.NewDate(2024, 3, 31))
	suite.createTestRevenue(user, "1000", types.NewDate(2024, 4, 1))
	suite.createTestRevenue(user, "500", types.NewDate(2024, 4, 30))
	suite.createTestRevenue(user, "222", types.NewDate(2024, 5, 1))

	suite.createTestExpense(user, "33", types.NewDate(2024, 3, 31), nil)
	suite.createTestExpense(user, "200", types.NewDate(2024, 4, 15), nil)
	suite.createTestExpense(user, "44", types.NewDate(2024, 5, 1), nil)

	suite.createTestRevenue(other, "999", types.NewDate(2024, 4, 10))
	suite.createTestExpense(other, "999", types.NewDate(2024, 4, 10), nil)

	stats, err := suite.service.MonthlyStats(context.Background(), user, 2024, 4)
	suite.Require().Nil(err)

	suite.Assert().Equal("2024-04", stats.Month.String())
	suite.assertDecimal("1500", stats.TotalRevenue)
	suite.assertDecimal("200", stats.TotalExpenses)
	suite.assertDecimal("1300", stats.Balance)
}

func (suite *TestSuiteStandard) TestMonthlyStatsYearBoundary() {
	user := suite.createTestUser()

	suite.createTestExpense(user, "10", types.NewDate(2023, 12, 31), nil)
	suite.createTestExpense(user, "20", types.NewDate(2024, 1, 1), nil)
	suite.createTestExpense(user, "40", types.NewDate(2024, 12, 31), nil)

	stats, err := suite.service.MonthlyStats(context.Background(), user, 2023, 12)
	suite.Require().Nil(err)
	suite.Assert().Equal("2023-12", stats.Month.String())
	suite.assertDecimal("10", stats.TotalExpenses)
	suite.assertDecimal("-10", stats.Balance)

	stats, err = suite.service.MonthlyStats(context.Background(), user, 2024, 1)
	suite.Require().Nil(err)
	suite.assertDecimal("20", stats.TotalExpenses)
	suite.assertDecimal("0", stats.TotalRevenue)
}

func (suite *TestSuiteStandard) TestMonthlyStatsPadding() {
	stats, err := suite.service.MonthlyStats(context.Background(), suite.createTestUser(), 987, 3)
	suite.Require().Nil(err)
	suite.Assert().Equal("0987-03", stats.Month.String())
}

func (suite *TestSuiteStandard) TestCategoryStatsSingleCategory() {
	user := suite.createTestUser()
	food := suite.createTestCategory("Food")

	suite.createTestExpense(user, "100", types.NewDate(2024, 5, 1), &food)
	suite.createTestExpense(user, "200", types.NewDate(2024, 5, 2), &food)

	stats, err := suite.service.CategoryStats(context.Background(), user, nil, nil)
	suite.Require().Nil(err)
	suite.Require().Len(stats, 1)

	suite.Assert().Equal("Food", stats[0].CategoryName)
	suite.assertDecimal("300", stats[0].TotalAmount)
	suite.assertDecimal("100", stats[0].Percentage)
}

func (suite *TestSuiteStandard) TestCategoryStatsWithoutExpenses() {
	user := suite.createTestUser()
	food := suite.createTestCategory("Food")

	// Outside of the requested range
	suite.createTestExpense(user, "100", types.NewDate(2024, 1, 1), &food)

	from := types.NewDate(2024, 2, 1)
	to := types.NewDate(2024, 2, 29)
	stats, err := suite.service.CategoryStats(context.Background(), user, &from, &to)
	suite.Require().Nil(err)
	suite.Assert().NotNil(stats)
	suite.Assert().Len(stats, 0)
}

func (suite *TestSuiteStandard) TestCategoryStatsZeroTotal() {
	user := suite.createTestUser()
	food := suite.createTestCategory("Food")
	rent := suite.createTestCategory("Rent")

	suite.createTestExpense(user, "0", types.NewDate(2024, 5, 1), &food)
	suite.createTestExpense(user, "0", types.NewDate(2024, 5, 1), &rent)

	stats, err := suite.service.CategoryStats(context.Background(), user, nil, nil)
	suite.Require().Nil(err)
	suite.Require().Len(stats, 2)

	for _, s := range stats {
		suite.assertDecimal("0", s.TotalAmount, s.CategoryName)
		suite.assertDecimal("0", s.Percentage, s.CategoryName)
	}
}

func (suite *TestSuiteStandard) TestCategoryStatsBoundsAndOrdering() {
	user := suite.createTestUser()
	other := suite.createTestUser()
	food := suite.createTestCategory("Food")
	rent := suite.createTestCategory("Rent")
	fun := suite.createTestCategory("Fun")
	books := suite.createTestCategory("books")

	from := types.NewDate(2024, 5, 1)
	to := types.NewDate(2024, 5, 31)

	// Both bounds are inclusive
	suite.createTestExpense(user, "250", from, &rent)
	suite.createTestExpense(user, "250", to, &rent)
	suite.createTestExpense(user, "250", types.NewDate(2024, 5, 10), &food)
	suite.createTestExpense(user, "125", types.NewDate(2024, 5, 11), &fun)
	suite.createTestExpense(user, "125", types.NewDate(2024, 5, 12), &books)

	// Excluded: outside the bounds, no category or other user
	suite.createTestExpense(user, "1000", types.NewDate(2024, 4, 30), &food)
	suite.createTestExpense(user, "1000", types.NewDate(2024, 6, 1), &food)
	suite.createTestExpense(user, "1000", types.NewDate(2024, 5, 15), nil)
	suite.createTestExpense(other, "1000", types.NewDate(2024, 5, 15), &food)

	stats, err := suite.service.CategoryStats(context.Background(), user, &from, &to)
	suite.Require().Nil(err)
	suite.Require().Len(stats, 4)

	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.CategoryName)
	}
	// Ties are sorted by name, ignoring case
	suite.Assert().Equal([]string{"Rent", "Food", "books", "Fun"}, names)

	suite.assertDecimal("500", stats[0].TotalAmount)
	suite.assertDecimal("50", stats[0].Percentage)
	suite.assertDecimal("250", stats[1].TotalAmount)
	suite.assertDecimal("25", stats[1].Percentage)
	suite.assertDecimal("125", stats[2].TotalAmount)
	suite.assertDecimal("12.5", stats[2].Percentage)

	total := decimal.Zero
	for _, s := range stats {
		total = total.Add(s.Percentage)
	}
	suite.assertDecimal("100", total)
}

func (suite *TestSuiteStandard) TestCategoryStatsDeterministic() {
	user := suite.createTestUser()
	for _, name := range []string{"Zoo", "alpha", "Beta", "gamma", "Delta"} {
		id := suite.createTestCategory(name)
		suite.createTestExpense(user, "10", types.NewDate(2024, 5, 1), &id)
	}

	first, err := suite.service.CategoryStats(context.Background(), user, nil, nil)
	suite.Require().Nil(err)

	for i := 0; i < 5; i++ {
		again, err := suite.service.CategoryStats(context.Background(), user, nil, nil)
		suite.Require().Nil(err)
		suite.Assert().Equal(first, again)
	}

	suite.Assert().Equal("alpha", first[0].CategoryName)
	suite.Assert().Equal("Zoo", first[4].CategoryName)
}

func (suite *TestSuiteStandard) TestDashboardWithoutBudget() {
	user := suite.createTestUser()
	food := suite.createTestCategory("Food")

	suite.createTestRevenue(user, "2000", types.NewDate(2024, 4, 28))
	suite.createTestRevenue(user, "300", types.NewDate(2024, 5, 2))
	suite.createTestExpense(user, "120", types.NewDate(2024, 5, 3), &food)
	suite.createTestExpense(user, "80", types.NewDate(2024, 5, 19), nil)
	suite.createTestExpense(user, "500", types.NewDate(2024, 4, 3), &food)

	// A budget of another month does not count
	_, _, err := suite.service.UpsertBudget(context.Background(), user, types.NewMonth(2024, 4), decimal.NewFromInt(900))
	suite.Require().Nil(err)

	stats, err := suite.service.Dashboard(context.Background(), user)
	suite.Require().Nil(err)

	suite.assertDecimal("0", stats.MonthlyBudget)
	suite.assertDecimal("200", stats.TotalExpensesThisMonth)
	suite.assertDecimal("300", stats.TotalRevenueThisMonth)
	suite.assertDecimal("-200", stats.BudgetRemaining)
	suite.assertDecimal("1600", stats.CurrentBalance)

	suite.Require().Len(stats.TopCategories, 1)
	suite.assertDecimal("120", stats.TopCategories[0].TotalAmount)
	suite.assertDecimal("100", stats.TopCategories[0].Percentage)
}

func (suite *TestSuiteStandard) TestDashboardWithBudget() {
	user := suite.createTestUser()

	_, _, err := suite.service.UpsertBudget(context.Background(), user, types.NewMonth(2024, 5), decimal.NewFromInt(1500))
	suite.Require().Nil(err)

	suite.createTestExpense(user, "400", types.NewDate(2024, 5, 1), nil)

	// Later this month. Counted for the month, but not for the categories up to today
	rent := suite.createTestCategory("Rent")
	suite.createTestExpense(user, "700", types.NewDate(2024, 5, 28), &rent)

	stats, err := suite.service.Dashboard(context.Background(), user)
	suite.Require().Nil(err)

	suite.assertDecimal("1500", stats.MonthlyBudget)
	suite.assertDecimal("1100", stats.TotalExpensesThisMonth)
	suite.assertDecimal("400", stats.BudgetRemaining)
	suite.assertDecimal("-1100", stats.CurrentBalance)
	suite.Assert().NotNil(stats.TopCategories)
	suite.Assert().Len(stats.TopCategories, 0)
}

func (suite *TestSuiteStandard) TestDashboardTopCategories() {
	user := suite.createTestUser()

	for i := 1; i <= 7; i++ {
		id := suite.createTestCategory(fmt.Sprintf("Category %d", i))
		suite.createTestExpense(user, fmt.Sprintf("%d", i*10), types.NewDate(2024, 5, 5), &id)
	}

	stats, err := suite.service.Dashboard(context.Background(), user)
	suite.Require().Nil(err)

	suite.Require().Len(stats.TopCategories, 5)
	suite.Assert().Equal("Category 7", stats.TopCategories[0].CategoryName)
	suite.Assert().Equal("Category 3", stats.TopCategories[4].CategoryName)

	// Percentages are relative to all categories, not only the top ones
	suite.assertDecimal("25", stats.TopCategories[0].Percentage)
}

func (suite *TestSuiteStandard) TestUpsertBudget() {
	user := suite.createTestUser()
	month := types.NewMonth(2024, 5)

	first, created, err := suite.service.UpsertBudget(context.Background(), user, month, decimal.NewFromInt(500))
	suite.Require().Nil(err)
	suite.Assert().True(created)

	second, created, err := suite.service.UpsertBudget(context.Background(), user, month, decimal.NewFromInt(800))
	suite.Require().Nil(err)
	suite.Assert().False(created)
	suite.Assert().Equal(first.ID, second.ID)
	suite.assertDecimal("800", second.Amount)

	var budgets []models.Budget
	suite.Require().Nil(suite.service.DB.Where("user_id = ?", user).Find(&budgets).Error)
	suite.Require().Len(budgets, 1)
	suite.assertDecimal("800", budgets[0].Amount)
	suite.Assert().Equal(month, budgets[0].Month)
}

func (suite *TestSuiteStandard) TestUpsertBudgetScopedToUserAndMonth() {
	user := suite.createTestUser()
	other := suite.createTestUser()

	a, _, err := suite.service.UpsertBudget(context.Background(), user, types.NewMonth(2024, 5), decimal.NewFromInt(1))
	suite.Require().Nil(err)
	b, created, err := suite.service.UpsertBudget(context.Background(), user, types.NewMonth(2024, 6), decimal.NewFromInt(2))
	suite.Require().Nil(err)
	suite.Assert().True(created)
	c, created, err := suite.service.UpsertBudget(context.Background(), other, types.NewMonth(2024, 5), decimal.NewFromInt(3))
	suite.Require().Nil(err)
	suite.Assert().True(created)

	suite.Assert().NotEqual(a.ID, b.ID)
	suite.Assert().NotEqual(a.ID, c.ID)

	var count int64
	suite.Require().Nil(suite.service.DB.Model(&models.Budget{}).Count(&count).Error)
	suite.Assert().Equal(int64(3), count)
}

func (suite *TestSuiteStandard) TestUpsertBudgetNegative() {
	_, _, err := suite.service.UpsertBudget(context.Background(), suite.createTestUser(), types.NewMonth(2024, 5), decimal.NewFromInt(-1))
	suite.Assert().ErrorIs(err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestUpsertBudgetConcurrent() {
	user := suite.createTestUser()
	month := types.NewMonth(2024, 5)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			_, _, err := suite.service.UpsertBudget(context.Background(), user, month, decimal.NewFromInt(amount))
			errs <- err
		}(int64(i * 100))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.Assert().Nil(err)
	}

	var count int64
	suite.Require().Nil(suite.service.DB.Model(&models.Budget{}).Where("user_id = ?", user).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	user := uuid.New()
	test.CloseDB(suite.T(), suite.service.DB)

	_, err := suite.service.CurrentBalance(context.Background(), user)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, err = suite.service.MonthlyStats(context.Background(), user, 2024, 5)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, err = suite.service.CategoryStats(context.Background(), user, nil, nil)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, err = suite.service.Dashboard(context.Background(), user)
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, _, err = suite.service.UpsertBudget(context.Background(), user, types.NewMonth(2024, 5), decimal.NewFromInt(1))
	suite.Assert().NotNil(err)
}
