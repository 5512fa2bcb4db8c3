package v1

import (
	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// owned returns a query restricted to the rows of the authenticated user.
func (co Controller) owned(c *gin.Context) *gorm.DB {
	return co.DB.WithContext(c.Request.Context()).Where("user_id = ?", auth.UserID(c))
}

// getOwnedResource loads the resource with the ID from the URI.
// Resources of other users are reported as not found.
//
// When the resource cannot be loaded, the error response is written
// and ok is false.
func getOwnedResource[R models.Budget | models.Revenue | models.Expense | models.Alert](co Controller, c *gin.Context) (resource R, ok bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		handleError(c, err)
		return resource, false
	}

	if err := co.owned(c).First(&resource, "id = ?", uri.ID.UUID).Error; err != nil {
		handleError(c, err)
		return resource, false
	}

	return resource, true
}

// getSharedResource loads a resource that is shared between all users.
func getSharedResource[R models.Category | models.Tag](co Controller, c *gin.Context) (resource R, ok bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		handleError(c, err)
		return resource, false
	}

	if err := co.DB.WithContext(c.Request.Context()).First(&resource, "id = ?", uri.ID.UUID).Error; err != nil {
		handleError(c, err)
		return resource, false
	}

	return resource, true
}

// patchFields returns the names of the fields of resource that are set in the
// body of a PATCH request. The amount and the date cannot be removed.
func patchFields(c *gin.Context, resource any) ([]any, error) {
	fields, err := httputil.GetBodyFields(c, resource)
	if err != nil {
		return nil, err
	}

	nullFields, err := httputil.GetNullBodyFields(c, resource)
	if err != nil {
		return nil, err
	}

	if slices.Contains(nullFields, any("Amount")) {
		return nil, errAmountNotSet
	}

	if slices.Contains(nullFields, any("Date")) {
		return nil, errDateNotSet
	}

	return fields, nil
}
