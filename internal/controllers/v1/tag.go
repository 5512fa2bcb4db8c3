package v1

import (
	"net/http"
	"strings"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

type TagEditable struct {
	Name string `json:"name" example:"vacation"` // Name of the tag
}

type TagResponse struct {
	Data models.Tag `json:"data"`
}

type TagListResponse struct {
	Data       []models.Tag `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// RegisterTagRoutes registers the routes for tags with
// the RouterGroup that is passed.
func (co Controller) RegisterTagRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTagList)
		r.GET("", co.GetTags)
		r.POST("", co.CreateTag)
	}

	// Tag with ID
	{
		r.OPTIONS("/:id", co.OptionsTagDetail)
		r.GET("/:id", co.GetTag)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tags
// @Success		204
// @Security		BearerAuth
// @Router			/v1/tags [options]
func (co Controller) OptionsTagList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Tags
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/tags/{id} [options]
func (co Controller) OptionsTagDetail(c *gin.Context) {
	if _, ok := getSharedResource[models.Tag](co, c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get tags
// @Description	Returns a list of tags, ordered by name
// @Tags			Tags
// @Produce		json
// @Success		200		{object}	TagListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			name	query	string	false	"Glob pattern for the name, e.g. trip-*"
// @Param			offset	query	uint	false	"The offset of the first Tag returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Tags to return. Defaults to 100."
// @Router			/v1/tags [get]
func (co Controller) GetTags(c *gin.Context) {
	var filter NameQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	var tags []models.Tag
	if err := co.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&tags).Error; err != nil {
		handleError(c, err)
		return
	}

	if slices.Contains(setFields, "Name") {
		tags = filterByName(tags, filter.Name, func(tag models.Tag) string { return tag.Name })
	}

	data, pagination := paginateSlice(tags, filter.Offset, limit(setFields, filter.Limit))
	c.JSON(http.StatusOK, TagListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Create tag
// @Description	Creates a new tag
// @Tags			Tags
// @Accept			json
// @Produce		json
// @Success		201	{object}	TagResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			tag	body		TagEditable	true	"Tag"
// @Router			/v1/tags [post]
func (co Controller) CreateTag(c *gin.Context) {
	var editable TagEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	if strings.TrimSpace(editable.Name) == "" {
		handleError(c, errNameNotSet)
		return
	}

	tag := models.Tag{Name: editable.Name}
	if err := co.DB.WithContext(c.Request.Context()).Create(&tag).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TagResponse{Data: tag})
}

// @Summary		Get tag
// @Description	Returns a specific tag
// @Tags			Tags
// @Produce		json
// @Success		200	{object}	TagResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/tags/{id} [get]
func (co Controller) GetTag(c *gin.Context) {
	tag, ok := getSharedResource[models.Tag](co, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, TagResponse{Data: tag})
}
