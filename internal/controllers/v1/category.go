package v1

import (
	"net/http"
	"strings"

	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

type CategoryEditable struct {
	Name string `json:"name" example:"Groceries"` // Name of the category. Must be unique.
}

type CategoryResponse struct {
	Data models.Category `json:"data"`
}

type CategoryListResponse struct {
	Data       []models.Category `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// NameQueryFilter filters categories and tags.
type NameQueryFilter struct {
	Name   string `form:"name"`   // Glob pattern the name must match, e.g. "food*"
	Offset uint   `form:"offset"` // The offset of the first resource returned. Defaults to 0.
	Limit  int    `form:"limit"`  // Maximum number of resources to return. Defaults to 100.
}

// filterByName returns the resources whose name matches the glob pattern.
// Matching ignores case.
func filterByName[R models.Category | models.Tag](resources []R, pattern string, name func(R) string) []R {
	pattern = strings.ToLower(pattern)

	matching := make([]R, 0, len(resources))
	for _, r := range resources {
		if glob.Glob(pattern, strings.ToLower(name(r))) {
			matching = append(matching, r)
		}
	}

	return matching
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Security		BearerAuth
// @Router			/v1/categories [options]
func (co Controller) OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [options]
func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	if _, ok := getSharedResource[models.Category](co, c); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get categories
// @Description	Returns a list of categories, ordered by name
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	CategoryListResponse
// @Failure		400		{object}	httperrors.HTTPError
// @Failure		500		{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			name	query	string	false	"Glob pattern for the name, e.g. food*"
// @Param			offset	query	uint	false	"The offset of the first Category returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Categories to return. Defaults to 100."
// @Router			/v1/categories [get]
func (co Controller) GetCategories(c *gin.Context) {
	var filter NameQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		handleError(c, err)
		return
	}
	setFields := httputil.GetURLFields(c.Request.URL, filter)

	var categories []models.Category
	if err := co.DB.WithContext(c.Request.Context()).Order("name ASC").Find(&categories).Error; err != nil {
		handleError(c, err)
		return
	}

	if slices.Contains(setFields, "Name") {
		categories = filterByName(categories, filter.Name, func(category models.Category) string { return category.Name })
	}

	data, pagination := paginateSlice(categories, filter.Offset, limit(setFields, filter.Limit))
	c.JSON(http.StatusOK, CategoryListResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		handleError(c, err)
		return
	}

	if strings.TrimSpace(editable.Name) == "" {
		handleError(c, errNameNotSet)
		return
	}

	category := models.Category{Name: editable.Name}
	if err := co.DB.WithContext(c.Request.Context()).Create(&category).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: category})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Security		BearerAuth
// @Param			id	path		URIID	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func (co Controller) GetCategory(c *gin.Context) {
	category, ok := getSharedResource[models.Category](co, c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}
