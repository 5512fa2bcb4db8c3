package v1

import (
	"net/http"
	"strings"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type RevenueEditable struct {
	Amount decimal.Decimal `json:"amount" example:"3200"`                                                 // The amount of money received
	Source string          `json:"source" example:"Salary"`                                               // Where the money came from
	Date   types.Date      `json:"date" swaggertype:"string" example:"2024-05-01" default:"current date"` // The date the money was received
}

func (e RevenueEditable) model(c *gin.Context) models.Revenue {
	return models.Revenue{
		UserID: auth.UserID(c),
		Amount: e.Amount,
		Source: strings.TrimSpace(e.Source),
		Date:   e.Date,
	}
}

type RevenueResponse struct {
	Data models.Revenue `json:"data"`
}

type RevenueListResponse struct {
	Data       []models.Revenue `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

type RevenueQueryFilter struct {
	Start  types.Date `form:"start"`  // Only revenues on or after this date
	End    types.Date `form:"end"`    // Only revenues on or before this date
	Offset uint       `form:"offset"` // The offset of the first Revenue returned. Defaults to 0.
	Limit  int        `form:"limit"`  // Maximum number of Revenues to return. Defaults to 100.
}

// RegisterRevenueRoutes registers the routes for revenues with
// the RouterGroup that is passed.
func (co Controller) RegisterRevenueRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsRevenueList)
		r.GET("", co.GetRevenues)
		r.POST("", co.CreateRevenue)
	}

	// Revenue with ID
	{
		r.OPTIONS("/:id", co.OptionsRevenueDetail)
		r.GET("/:id", co.GetRevenue)
		r.PATCH("/:id", co.UpdateRevenue)
		r.DELETE("/:id", co.DeleteRevenue)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Revenues
// @Success		204
// @Security		BearerAuth
// @Router			/v1/revenues [options]
func (co Controller) OptionsRevenueList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Revenues
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/revenues/{id} [options]
func (co Controller) OptionsRevenueDetail(c *gin.Context) {
	if _, ok := getOwnedResource[models.Revenue](co, c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get revenues
// @Description	Returns the revenues of the user, latest first
// @Tags			Revenues
// @Produce		json
// @Success		200		{object}	RevenueListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			start	query	string	false	"Only revenues on or after this date (YYYY-MM-DD)"
// @Param			end		query	string	false	"Only revenues on or before this date (YYYY-MM-DD)"
// @Param			offset	query	uint	false	"The offset of the first Revenue returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Revenues to return. Defaults to 100."
// @Router			/v1/revenues [get]
func (co Controller) GetRevenues(c *gin.Context) {
	var filter RevenueQueryFilter
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

	revenues, pagination, err := paginate[models.Revenue](q, filter.Offset, limit(setFields, filter.Limit))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, RevenueListResponse{
		Data:       revenues,
		Pagination: pagination,
	})
}

// @Summary		Create revenue
// @Description	Records money the user received
// @Tags			Revenues
// @Accept			json
// @Produce		json
// @Success		201		{object}	RevenueResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			revenue	body		RevenueEditable	true	"Revenue"
// @Router			/v1/revenues [post]
func (co Controller) CreateRevenue(c *gin.Context) {
	var editable RevenueEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	revenue := editable.model(c)
	if err := co.DB.WithContext(c.Request.Context()).Create(&revenue).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RevenueResponse{Data: revenue})
}

// @Summary		Get revenue
// @Description	Returns a specific revenue
// @Tags			Revenues
// @Produce		json
// @Success		200	{object}	RevenueResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/revenues/{id} [get]
func (co Controller) GetRevenue(c *gin.Context) {
	revenue, ok := getOwnedResource[models.Revenue](co, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, RevenueResponse{Data: revenue})
}

// @Summary		Update revenue
// @Description	Updates a revenue. Only values to be updated need to be specified.
// @Tags			Revenues
// @Accept			json
// @Produce		json
// @Success		200		{object}	RevenueResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		404		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id		path		URIID			true	"ID formatted as string"
// @Param			revenue	body		RevenueEditable	true	"Revenue"
// @Router			/v1/revenues/{id} [patch]
func (co Controller) UpdateRevenue(c *gin.Context) {
	revenue, ok := getOwnedResource[models.Revenue](co, c)
	if !ok {
		return
	}

	updateFields, err := patchFields(c, RevenueEditable{})
	if err != nil {
		handleError(c, err)
		return
	}

	var data RevenueEditable
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

	if len(updateFields) > 0 {
		err = co.DB.WithContext(c.Request.Context()).Model(&revenue).Select("", updateFields...).Updates(data.model(c)).Error
		if err != nil {
			handleError(c, err)
			return
		}
	}

	revenue, ok = getOwnedResource[models.Revenue](co, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, RevenueResponse{Data: revenue})
}

// @Summary		Delete revenue
// @Description	Deletes a revenue
// @Tags			Revenues
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/revenues/{id} [delete]
func (co Controller) DeleteRevenue(c *gin.Context) {
	revenue, ok := getOwnedResource[models.Revenue](co, c)
	if !ok {
		return
	}

	if err := co.DB.WithContext(c.Request.Context()).Delete(&revenue).Error; err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
