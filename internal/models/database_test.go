package models_test

import (
	"time"

	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestNotFoundError() {
	var budget models.Budget
	err := suite.db.First(&budget, "id = ?", uuid.New()).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no budget matching your query", err.Error())

	var category models.Category
	err = suite.db.First(&category, "id = ?", uuid.New()).Error
	suite.Assert().Equal("there is no category matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestUniqueViolations() {
	user := suite.createTestUser("unique@example.com")

	suite.Run("Email", func() {
		err := suite.db.Create(&models.User{Name: "Other", Email: "UNIQUE@example.com "}).Error
		suite.Assert().ErrorIs(err, models.ErrEmailTaken)
	})

	suite.Run("Category name", func() {
		suite.createTestCategory("Rent")
		err := suite.db.Create(&models.Category{Name: "Rent"}).Error
		suite.Assert().ErrorIs(err, models.ErrCategoryNameNotUnique)
	})

	suite.Run("Budget month", func() {
		month := types.NewMonth(2024, 4)
		suite.Require().Nil(suite.db.Create(&models.Budget{UserID: user.ID, Month: month, Amount: amount("100")}).Error)

		err := suite.db.Create(&models.Budget{UserID: user.ID, Month: month, Amount: amount("200")}).Error
		suite.Assert().ErrorIs(err, models.ErrBudgetMonthNotUnique)

		// Other users can have a budget for the same month
		other := suite.createTestUser("other@example.com")
		suite.Assert().Nil(suite.db.Create(&models.Budget{UserID: other.ID, Month: month, Amount: amount("200")}).Error)
	})
}

func (suite *TestSuiteStandard) TestForeignKeyViolation() {
	user := suite.createTestUser("fk@example.com")
	missing := uuid.New()

	err := suite.db.Create(&models.Expense{UserID: user.ID, Amount: amount("1"), CategoryID: &missing}).Error
	suite.Assert().ErrorIs(err, models.ErrReferenceNotFound)
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	suite.CloseDB()

	var budgets []models.Budget
	err := suite.db.Find(&budgets).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	err = suite.db.Create(&models.Category{Name: "Closed"}).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestTimestampsInUTC() {
	user := suite.createTestUser("utc@example.com")

	var found models.User
	suite.Require().Nil(suite.db.First(&found, "id = ?", user.ID).Error)

	suite.Assert().Equal(time.UTC, found.CreatedAt.Location())
	suite.Assert().Equal(time.UTC, found.UpdatedAt.Location())
	suite.Assert().Equal("utc@example.com", found.Email)
}

func (suite *TestSuiteStandard) TestDefaults() {
	user := suite.createTestUser("defaults@example.com")
	nilCategory := uuid.Nil

	revenue := suite.createTestRevenue(models.Revenue{UserID: user.ID, Amount: amount("10"), Source: "  Gift "})
	suite.Assert().Equal(types.DateOf(time.Now().In(time.UTC)), revenue.Date)
	suite.Assert().Equal("Gift", revenue.Source)

	expense := suite.createTestExpense(models.Expense{UserID: user.ID, Amount: amount("10"), CategoryID: &nilCategory})
	suite.Assert().Nil(expense.CategoryID)
}

func (suite *TestSuiteStandard) TestNegativeAmount() {
	user := suite.createTestUser("negative@example.com")

	tests := []struct {
		name  string
		model any
	}{
		{"Revenue", &models.Revenue{UserID: user.ID, Amount: amount("-1")}},
		{"Expense", &models.Expense{UserID: user.ID, Amount: amount("-0.01")}},
		{"Budget", &models.Budget{UserID: user.ID, Month: types.NewMonth(2024, 1), Amount: amount("-100")}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Assert().ErrorIs(suite.db.Create(tt.model).Error, models.ErrAmountNegative)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseTags() {
	user := suite.createTestUser("tags@example.com")
	tags := []models.Tag{{Name: "vacation"}, {Name: "family"}}
	suite.Require().Nil(suite.db.Create(&tags).Error)

	expense := suite.createTestExpense(models.Expense{UserID: user.ID, Amount: amount("99"), Tags: tags})

	var found models.Expense
	suite.Require().Nil(suite.db.Preload("Tags").First(&found, "id = ?", expense.ID).Error)
	suite.Assert().Len(found.Tags, 2)

	// Tags are not duplicated
	var count int64
	suite.Require().Nil(suite.db.Model(&models.Tag{}).Count(&count).Error)
	suite.Assert().Equal(int64(2), count)
}
