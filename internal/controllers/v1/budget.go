package v1

import (
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	Month  types.Month     `json:"month" swaggertype:"string" example:"2024-05"` // The month the budget is for
	Amount decimal.Decimal `json:"amount" example:"1500"`                        // The spending limit for the month
}

type BudgetResponse struct {
	Data models.Budget `json:"data"`
}

type BudgetListResponse struct {
	Data       []models.Budget `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type BudgetQueryFilter struct {
	Offset uint `form:"offset"` // The offset of the first Budget returned. Defaults to 0.
	Limit  int  `form:"limit"`  // Maximum number of Budgets to return. Defaults to 100.
}

type DashboardResponse struct {
	Data ledger.DashboardStats `json:"data"`
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.UpsertBudget)
	}

	// Calculated endpoints
	{
		r.OPTIONS("/dashboard", co.OptionsDashboard)
		r.GET("/dashboard", co.GetDashboard)
		r.OPTIONS("/month/:month", co.OptionsBudgetMonth)
		r.GET("/month/:month", co.GetBudgetForMonth)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Security		BearerAuth
// @Router			/v1/budgets [options]
func (co Controller) OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Security		BearerAuth
// @Router			/v1/budgets/dashboard [options]
func (co Controller) OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Security		BearerAuth
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/budgets/month/{month} [options]
func (co Controller) OptionsBudgetMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	if _, ok := getOwnedResource[models.Budget](co, c); !ok {
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Get budgets
// @Description	Returns the budgets of the user, latest month first
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			offset	query	uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Budgets to return. Defaults to 100."
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	budgets, pagination, err := paginate[models.Budget](co.owned(c).Order("month DESC"), filter.Offset, limit(setFields, filter.Limit))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data:       budgets,
		Pagination: pagination,
	})
}

// @Summary		Set budget
// @Description	Sets the budget for a month. If the user already has a budget for the month,
// @Description	its amount is updated, otherwise a new budget is created.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse	"The existing budget was updated"
// @Success		201		{object}	BudgetResponse	"A new budget was created"
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func (co Controller) UpsertBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	if editable.Month.IsZero() {
		handleError(c, errMonthNotSet)
		return
	}

	budget, created, err := co.Ledger.UpsertBudget(c.Request.Context(), auth.UserID(c), editable.Month, editable.Amount)
	if err != nil {
		handleError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, BudgetResponse{Data: budget})
}

// @Summary		Get budget for month
// @Description	Returns the budget of the user for a specific month
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/budgets/month/{month} [get]
func (co Controller) GetBudgetForMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		handleError(c, err)
		return
	}

	month, err := types.ParseMonth(uri.Month)
	if err != nil {
		handleError(c, err)
		return
	}

	budget, err := models.BudgetForMonth(co.DB.WithContext(c.Request.Context()), auth.UserID(c), month)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: budget})
}

// @Summary		Dashboard
// @Description	Returns balance, budget, totals and top categories for the current month
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/budgets/dashboard [get]
// @Router			/v1/stats/dashboard [get]
func (co Controller) GetDashboard(c *gin.Context) {
	dashboard, err := co.Ledger.Dashboard(c.Request.Context(), auth.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: dashboard})
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	budget, ok := getOwnedResource[models.Budget](co, c)
	if !ok {
		return
	}

	// Budgets are removed for good so that the month can be set again
	if err := co.DB.WithContext(c.Request.Context()).Unscoped().Delete(&budget).Error; err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
