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

type Balance struct {
	Balance decimal.Decimal `json:"balance" example:"10432.17"` // All-time revenues minus all-time expenses
}

type BalanceResponse struct {
	Data Balance `json:"data"`
}

type MonthlyStatsResponse struct {
	Data ledger.MonthlyStats `json:"data"`
}

type CategoryStatsResponse struct {
	Data []ledger.CategoryStats `json:"data"`
}

type MonthQueryFilter struct {
	Month types.Month `form:"month"` // The month in YYYY-MM format. Defaults to the current month.
}

type DateRangeQueryFilter struct {
	Start types.Date `form:"start"` // First date to include
	End   types.Date `form:"end"`   // Last date to include
}

// dateWindow returns the window for the inclusive start and end dates.
// Zero dates do not restrict the window.
func dateWindow(start, end types.Date) (models.Window, error) {
	if !start.IsZero() && !end.IsZero() && end.Time().Before(start.Time()) {
		return models.Window{}, errInvalidDateWindow
	}

	return models.DateWindow(&start, &end), nil
}

// RegisterStatsRoutes registers the routes for the statistics with
// the RouterGroup that is passed.
func (co Controller) RegisterStatsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/balance", co.OptionsStats)
	r.GET("/balance", co.GetBalance)
	r.OPTIONS("/monthly", co.OptionsStats)
	r.GET("/monthly", co.GetMonthlyStats)
	r.OPTIONS("/categories", co.OptionsStats)
	r.GET("/categories", co.GetCategoryStats)
	r.OPTIONS("/dashboard", co.OptionsStats)
	r.GET("/dashboard", co.GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Statistics
// @Success		204
// @Security		BearerAuth
// @Router			/v1/stats/balance [options]
// @Router			/v1/stats/monthly [options]
// @Router			/v1/stats/categories [options]
// @Router			/v1/stats/dashboard [options]
func (co Controller) OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Current balance
// @Description	Returns all-time revenues minus all-time expenses
// @Tags			Statistics
// @Produce		json
// @Success		200	{object}	BalanceResponse
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Router			/v1/stats/balance [get]
func (co Controller) GetBalance(c *gin.Context) {
	balance, err := co.Ledger.CurrentBalance(c.Request.Context(), auth.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{Data: Balance{Balance: balance}})
}

// @Summary		Monthly statistics
// @Description	Returns revenue and expense totals for a month
// @Tags			Statistics
// @Produce		json
// @Success		200		{object}	MonthlyStatsResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			month	query	string	false	"The month in YYYY-MM format. Defaults to the current month."
// @Router			/v1/stats/monthly [get]
func (co Controller) GetMonthlyStats(c *gin.Context) {
	var filter MonthQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}

	month := filter.Month
	if month.IsZero() {
		month = co.Ledger.CurrentMonth()
	}

	stats, err := co.Ledger.MonthlyStats(c.Request.Context(), auth.UserID(c), month.Year(), month.Month())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MonthlyStatsResponse{Data: stats})
}

// @Summary		Category statistics
// @Description	Returns the expense total and share of each category, largest first
// @Tags			Statistics
// @Produce		json
// @Success		200		{object}	CategoryStatsResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			start	query	string	false	"First date to include (YYYY-MM-DD)"
// @Param			end		query	string	false	"Last date to include (YYYY-MM-DD)"
// @Router			/v1/stats/categories [get]
func (co Controller) GetCategoryStats(c *gin.Context) {
	var filter DateRangeQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}

	var from, to *types.Date
	if !filter.Start.IsZero() {
		from = &filter.Start
	}

	if !filter.End.IsZero() {
		to = &filter.End
	}

	stats, err := co.Ledger.CategoryStats(c.Request.Context(), auth.UserID(c), from, to)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryStatsResponse{Data: stats})
}
