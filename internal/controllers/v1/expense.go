package v1

import (
	"net/http"
	"strings"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	internal_uuid "github.com/budgetwise/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ExpenseEditable struct {
	Amount      decimal.Decimal `json:"amount" example:"42.5"`                                                 // The amount of money spent
	Description string          `json:"description" example:"Weekly groceries"`                                // What the money was spent on
	CategoryID  *uuid.UUID      `json:"categoryId" example:"4e743e94-6a4b-44d6-aba5-d77c87103ff7"`             // ID of the category, null for uncategorized expenses
	Date        types.Date      `json:"date" swaggertype:"string" example:"2024-05-03" default:"current date"` // The date the money was spent
	Type        string          `json:"type" example:"variable"`                                               // Free form type, e.g. "fixed" or "variable"
	TagIDs      []uuid.UUID     `json:"tagIds"`                                                                // IDs of the tags of the expense
}

func (e ExpenseEditable) model(c *gin.Context) models.Expense {
	return models.Expense{
		UserID:      auth.UserID(c),
		Amount:      e.Amount,
		Description: strings.TrimSpace(e.Description),
		CategoryID:  e.CategoryID,
		Date:        e.Date,
		Type:        e.Type,
	}
}

type ExpenseResponse struct {
	Data models.Expense `json:"data"`
}

type ExpenseListResponse struct {
	Data       []models.Expense `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

type ExpenseQueryFilter struct {
	Start    types.Date         `form:"start"`    // Only expenses on or after this date
	End      types.Date         `form:"end"`      // Only expenses on or before this date
	Category internal_uuid.UUID `form:"category"` // Only expenses in this category
	Offset   uint               `form:"offset"`   // The offset of the first Expense returned. Defaults to 0.
	Limit    int                `form:"limit"`    // Maximum number of Expenses to return. Defaults to 100.
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Security		BearerAuth
// @Router			/v1/expenses [options]
func (co Controller) OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	if _, ok := getOwnedResource[models.Expense](co, c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get expenses
// @Description	Returns the expenses of the user, latest first
// @Tags			Expenses
// @Produce		json
// @Success		200			{object}	ExpenseListResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			start		query	string	false	"Only expenses on or after this date (YYYY-MM-DD)"
// @Param			end			query	string	false	"Only expenses on or before this date (YYYY-MM-DD)"
// @Param			category	query	string	false	"Filter by category ID"
// @Param			offset		query	uint	false	"The offset of the first Expense returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Expenses to return. Defaults to 100."
// @Router			/v1/expenses [get]
func (co Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	window, err := dateWindow(filter.Start, filter.End)
	if err != nil {
		handleError(c, err)
		return
	}

	q := co.owned(c).
		Scopes(window.Scope("date")).
		Order("date DESC, created_at DESC")

	if slices.Contains(setFields, "Category") {
		q = q.Where("category_id = ?", filter.Category.UUID)
	}

	expenses, pagination, err := paginate[models.Expense](q, filter.Offset, limit(setFields, filter.Limit), "Tags")
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data:       expenses,
		Pagination: pagination,
	})
}

// @Summary		Create expense
// @Description	Records money the user spent
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	db := co.DB.WithContext(c.Request.Context())

	tags, err := findTags(db, editable.TagIDs)
	if err != nil {
		handleError(c, err)
		return
	}

	expense := editable.model(c)
	expense.Tags = tags

	// The tags exist already, only the associations are created
	if err := db.Omit("Tags.*").Create(&expense).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: expense})
}

// @Summary		Get expense
// @Description	Returns a specific expense with its tags
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func (co Controller) GetExpense(c *gin.Context) {
	expense, ok := co.getExpenseWithTags(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: expense})
}

// @Summary		Update expense
// @Description	Updates an expense. Only values to be updated need to be specified.
// @Description	When tagIds is set, the tags of the expense are replaced.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	expense, ok := getOwnedResource[models.Expense](co, c)
	if !ok {
		return
	}

	updateFields, err := patchFields(c, ExpenseEditable{})
	if err != nil {
		handleError(c, err)
		return
	}

	var data ExpenseEditable
	if err := httputil.BindData(c, &data); err != nil {
		handleError(c, err)
		return
	}

	if data.Amount.IsNegative() {
		handleError(c, models.ErrAmountNegative)
		return
	}

	if slices.Contains(updateFields, any("Date")) && data.Date.IsZero() {
		handleError(c, errDateNotSet)
		return
	}

	// Tags are an association and cannot be updated as a column
	replaceTags := slices.Contains(updateFields, any("TagIDs"))
	updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
		return field == "TagIDs"
	})

	err = co.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if len(updateFields) > 0 {
			if err := tx.Model(&expense).Select("", updateFields...).Updates(data.model(c)).Error; err != nil {
				return err
			}
		}

		if !replaceTags {
			return nil
		}

		tags, err := findTags(tx, data.TagIDs)
		if err != nil {
			return err
		}

		return tx.Model(&expense).Association("Tags").Replace(tags)
	})
	if err != nil {
		handleError(c, err)
		return
	}

	expense, ok = co.getExpenseWithTags(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: expense})
}

// @Summary		Delete expense
// @Description	Deletes an expense
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	expense, ok := getOwnedResource[models.Expense](co, c)
	if !ok {
		return
	}

	if err := co.DB.WithContext(c.Request.Context()).Delete(&expense).Error; err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getExpenseWithTags loads the expense with the ID from the URI including its tags.
func (co Controller) getExpenseWithTags(c *gin.Context) (models.Expense, bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		handleError(c, err)
		return models.Expense{}, false
	}

	var expense models.Expense
	if err := co.owned(c).Preload("Tags").First(&expense, "id = ?", uri.ID.UUID).Error; err != nil {
		handleError(c, err)
		return models.Expense{}, false
	}

	return expense, true
}

// findTags loads the tags with the IDs. Every ID must belong to an existing tag.
func findTags(db *gorm.DB, ids []uuid.UUID) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	if err := db.Where("id IN ?", unique).Find(&tags).Error; err != nil {
		return nil, err
	}

	if len(tags) != len(unique) {
		return nil, errTagNotFound
	}

	return tags, nil
}
