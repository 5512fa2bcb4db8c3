package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/budgetwise/backend/internal/controllers/v1"
	"github.com/budgetwise/backend/internal/types"
	"github.com/budgetwise/backend/test"
	"github.com/stretchr/testify/assert"
)

// createTestLedger creates revenues and expenses in April and May 2024.
func (suite *TestSuiteStandard) createTestLedger(t *testing.T, token string) {
	rent := suite.createTestCategory(t, token, "Rent")
	food := suite.createTestCategory(t, token, "Food")

	suite.createTestRevenue(t, token, v1.RevenueEditable{Amount: amount("3000"), Date: types.NewDate(2024, 4, 1)})
	suite.createTestRevenue(t, token, v1.RevenueEditable{Amount: amount("3200"), Date: types.NewDate(2024, 5, 1)})

	suite.createTestExpense(t, token, v1.ExpenseEditable{Amount: amount("1000"), CategoryID: &rent.Data.ID, Date: types.NewDate(2024, 4, 1)})
	suite.createTestExpense(t, token, v1.ExpenseEditable{Amount: amount("1000"), CategoryID: &rent.Data.ID, Date: types.NewDate(2024, 5, 1)})
	suite.createTestExpense(t, token, v1.ExpenseEditable{Amount: amount("250.50"), CategoryID: &food.Data.ID, Date: types.NewDate(2024, 5, 31)})
	suite.createTestExpense(t, token, v1.ExpenseEditable{Amount: amount("49.50"), Date: types.NewDate(2024, 5, 10)})
}

func (suite *TestSuiteStandard) TestStatsBalance() {
	token, _ := suite.createTestUser(suite.T())
	other, _ := suite.createTestUser(suite.T())
	suite.createTestLedger(suite.T(), token)
	suite.createTestRevenue(suite.T(), other, v1.RevenueEditable{Amount: amount("99999")})

	r := suite.request(suite.T(), token, http.MethodGet, "http://example.com/v1/stats/balance", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var balance v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &balance)

	// 6200 revenue - 2300 expenses
	suite.assertDecimal(suite.T(), "3900", balance.Data.Balance)
}

func (suite *TestSuiteStandard) TestStatsBalanceNoData() {
	token, _ := suite.createTestUser(suite.T())

	r := suite.request(suite.T(), token, http.MethodGet, "http://example.com/v1/stats/balance", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`{"data": {"balance": 0}}`, r.Body.String())
}

func (suite *TestSuiteStandard) TestStatsMonthly() {
	token, _ := suite.createTestUser(suite.T())
	suite.createTestLedger(suite.T(), token)

	tests := []struct {
		name     string
		query    string
		month    string
		revenue  string
		expenses string
		balance  string
	}{
		{"Defaults to current month", "", "2024-05", "3200", "1300", "1900"},
		{"April", "month=2024-04", "2024-04", "3000", "1000", "2000"},
		{"Empty month", "month=2023-12", "2023-12", "0", "0", "0"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, "http://example.com/v1/stats/monthly?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var stats v1.MonthlyStatsResponse
			test.DecodeResponse(t, &r, &stats)
			assert.Equal(t, tt.month, stats.Data.Month.String())
			suite.assertDecimal(t, tt.revenue, stats.Data.TotalRevenue)
			suite.assertDecimal(t, tt.expenses, stats.Data.TotalExpenses)
			suite.assertDecimal(t, tt.balance, stats.Data.Balance)
		})
	}

	r := suite.request(suite.T(), token, http.MethodGet, "http://example.com/v1/stats/monthly?month=2024-5-1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), types.ErrInvalidMonth.Error())
}

func (suite *TestSuiteStandard) TestStatsCategories() {
	token, _ := suite.createTestUser(suite.T())
	suite.createTestLedger(suite.T(), token)

	tests := []struct {
		name        string
		query       string
		categories  []string
		totals      []string
		percentages []string
	}{
		{"All time", "", []string{"Rent", "Food"}, []string{"2000", "250.5"}, []string{"88.87", "11.13"}},
		{"May", "start=2024-05-01&end=2024-05-31", []string{"Rent", "Food"}, []string{"1000", "250.5"}, []string{"79.97", "20.03"}},
		{"End is inclusive", "end=2024-05-01", []string{"Rent"}, []string{"2000"}, []string{"100.00"}},
		{"Start after end", "start=2024-06-01&end=2024-05-01", []string{}, []string{}, []string{}},
		{"No expenses", "start=2025-01-01", []string{}, []string{}, []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, "http://example.com/v1/stats/categories?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var stats v1.CategoryStatsResponse
			test.DecodeResponse(t, &r, &stats)
			assert.NotNil(t, stats.Data, "An empty result must be an empty list")

			names := make([]string, 0, len(stats.Data))
			for i, s := range stats.Data {
				names = append(names, s.CategoryName)
				suite.assertDecimal(t, tt.totals[i], s.TotalAmount)
				assert.Equal(t, tt.percentages[i], s.Percentage.StringFixed(2))
			}
			assert.Equal(t, tt.categories, names)
		})
	}

	r := suite.request(suite.T(), token, http.MethodGet, "http://example.com/v1/stats/categories?start=May", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestStatsDashboard() {
	token, _ := suite.createTestUser(suite.T())
	suite.createTestLedger(suite.T(), token)

	r := suite.request(suite.T(), token, http.MethodPost, "http://example.com/v1/budgets", v1.BudgetEditable{
		Month:  types.NewMonth(2024, 5),
		Amount: amount("2000"),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	for _, path := range []string{"/v1/stats/dashboard", "/v1/budgets/dashboard"} {
		suite.T().Run(path, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, "http://example.com"+path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var dashboard v1.DashboardResponse
			test.DecodeResponse(t, &r, &dashboard)

			d := dashboard.Data
			suite.assertDecimal(t, "3900", d.CurrentBalance)
			suite.assertDecimal(t, "2000", d.MonthlyBudget)
			suite.assertDecimal(t, "700", d.BudgetRemaining)
			suite.assertDecimal(t, "1300", d.TotalExpensesThisMonth)
			suite.assertDecimal(t, "3200", d.TotalRevenueThisMonth)

			// The current day is the 20th, the food expense on the 31st is not included yet
			assert.Len(t, d.TopCategories, 1)
			assert.Equal(t, "Rent", d.TopCategories[0].CategoryName)
		})
	}
}

func (suite *TestSuiteStandard) TestStatsDashboardWithoutBudget() {
	token, _ := suite.createTestUser(suite.T())

	r := suite.request(suite.T(), token, http.MethodGet, "http://example.com/v1/stats/dashboard", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var dashboard v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &dashboard)
	suite.assertDecimal(suite.T(), "0", dashboard.Data.MonthlyBudget)
	suite.assertDecimal(suite.T(), "0", dashboard.Data.BudgetRemaining)
	suite.Assert().NotNil(dashboard.Data.TopCategories)
	suite.Assert().Empty(dashboard.Data.TopCategories)
}

func (suite *TestSuiteStandard) TestStatsOptions() {
	token, _ := suite.createTestUser(suite.T())

	for _, path := range []string{"balance", "monthly", "categories", "dashboard"} {
		suite.T().Run(path, func(t *testing.T) {
			r := suite.request(t, token, http.MethodOptions, "http://example.com/v1/stats/"+path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestStatsDBClosed() {
	token, _ := suite.createTestUser(suite.T())

	suite.CloseDB()

	for _, path := range []string{"balance", "monthly", "categories", "dashboard"} {
		suite.T().Run(path, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, "http://example.com/v1/stats/"+path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
