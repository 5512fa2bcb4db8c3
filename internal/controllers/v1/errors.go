package v1

import (
	"errors"
	"net/http"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/httperrors"
	"github.com/budgetwise/backend/internal/httputil"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var (
	errMonthNotSet       = errors.New("the month must be set")
	errNameNotSet        = errors.New("the name must be set")
	errMessageNotSet     = errors.New("the message must be set")
	errAmountNotSet      = errors.New("the amount must not be null")
	errDateNotSet        = errors.New("the date must be a valid date, it cannot be removed")
	errTagNotFound       = errors.New("there is no tag for one of the IDs in tagIds")
	errInvalidDateWindow = errors.New("the start date must not be after the end date")
)

// clientErrors are caused by the request and returned with HTTP 400.
var clientErrors = []error{
	errMonthNotSet,
	errNameNotSet,
	errMessageNotSet,
	errAmountNotSet,
	errDateNotSet,
	errTagNotFound,
	errInvalidDateWindow,
	httputil.ErrInvalidBody,
	httputil.ErrRequestBodyEmpty,
	models.ErrEmailTaken,
	models.ErrCategoryNameNotUnique,
	models.ErrBudgetMonthNotUnique,
	models.ErrReferenceNotFound,
	models.ErrAmountNegative,
	auth.ErrPasswordTooShort,
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	for _, e := range clientErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrUnauthorized) {
		return http.StatusUnauthorized
	}

	return 0
}

// handleError writes the error response.
func handleError(c *gin.Context, err error) {
	if code := status(err); code != 0 {
		httperrors.New(c, code, err.Error())
		return
	}

	httperrors.Handler(c, err)
}
