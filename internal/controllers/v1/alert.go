package v1

import (
	"net/http"
	"strings"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type AlertEditable struct {
	Message     string     `json:"message" example:"Pay the rent"`                        // The text to show
	TriggerDate types.Date `json:"triggerDate" swaggertype:"string" example:"2024-06-01"` // The date the alert is due
}

type AlertResponse struct {
	Data models.Alert `json:"data"`
}

type AlertListResponse struct {
	Data       []models.Alert `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type AlertQueryFilter struct {
	Offset uint `form:"offset"` // The offset of the first Alert returned. Defaults to 0.
	Limit  int  `form:"limit"`  // Maximum number of Alerts to return. Defaults to 100.
}

// RegisterAlertRoutes registers the routes for alerts with
// the RouterGroup that is passed.
func (co Controller) RegisterAlertRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsAlertList)
		r.GET("", co.GetAlerts)
		r.POST("", co.CreateAlert)
	}

	// Alert with ID
	{
		r.OPTIONS("/:id", co.OptionsAlertDetail)
		r.GET("/:id", co.GetAlert)
		r.DELETE("/:id", co.DeleteAlert)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Security		BearerAuth
// @Router			/v1/alerts [options]
func (co Controller) OptionsAlertList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Alerts
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/alerts/{id} [options]
func (co Controller) OptionsAlertDetail(c *gin.Context) {
	if _, ok := getOwnedResource[models.Alert](co, c); !ok {
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Get alerts
// @Description	Returns the alerts of the user, ordered by trigger date
// @Tags			Alerts
// @Produce		json
// @Success		200		{object}	AlertListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			offset	query	uint	false	"The offset of the first Alert returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Alerts to return. Defaults to 100."
// @Router			/v1/alerts [get]
func (co Controller) GetAlerts(c *gin.Context) {
	var filter AlertQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	alerts, pagination, err := paginate[models.Alert](co.owned(c).Order("trigger_date ASC, created_at ASC"), filter.Offset, limit(setFields, filter.Limit))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{
		Data:       alerts,
		Pagination: pagination,
	})
}

// @Summary		Create alert
// @Description	Creates a new alert
// @Tags			Alerts
// @Accept			json
// @Produce		json
// @Success		201		{object}	AlertResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			alert	body		AlertEditable	true	"Alert"
// @Router			/v1/alerts [post]
func (co Controller) CreateAlert(c *gin.Context) {
	var editable AlertEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	if strings.TrimSpace(editable.Message) == "" {
		handleError(c, errMessageNotSet)
		return
	}

	alert := models.Alert{
		UserID:      auth.UserID(c),
		Message:     editable.Message,
		TriggerDate: editable.TriggerDate,
	}

	if err := co.DB.WithContext(c.Request.Context()).Create(&alert).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AlertResponse{Data: alert})
}

// @Summary		Get alert
// @Description	Returns a specific alert
// @Tags			Alerts
// @Produce		json
// @Success		200	{object}	AlertResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/alerts/{id} [get]
func (co Controller) GetAlert(c *gin.Context) {
	alert, ok := getOwnedResource[models.Alert](co, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, AlertResponse{Data: alert})
}

// @Summary		Delete alert
// @Description	Deletes an alert
// @Tags			Alerts
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/alerts/{id} [delete]
func (co Controller) DeleteAlert(c *gin.Context) {
	alert, ok := getOwnedResource[models.Alert](co, c)
	if !ok {
		return
	}

	if err := co.DB.WithContext(c.Request.Context()).Delete(&alert).Error; err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
