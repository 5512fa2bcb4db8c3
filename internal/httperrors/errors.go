// Package httperrors writes error responses.
package httperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/internal/types"
	"github.com/budgetwise/backend/internal/uuid"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/go-sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// Generate a struct containing the HTTP error on the fly.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	// Format msgAndArgs in a final string.
	// This is taken almost exactly from https://github.com/stretchr/testify/blob/181cea6eab8b2de7071383eca4be32a424db38dd/assert/assertions.go#L181
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
		msg = fmt.Sprintf("%+v", msg)
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.AbortWithStatusJSON(status, HTTPError{
		Error: msg,
	})
}

func InvalidQueryString(c *gin.Context) {
	New(c, http.StatusBadRequest, "The query string contains unparseable data. Please check the values")
}

// ValidationErrorToText returns a readable message for a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "email":
		return "Invalid email format"
	case "len":
		return fmt.Sprintf("%s must be %s characters long", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}

// DBErrorMessage returns an error message and status code appropriate to the error that has occurred.
func DBErrorMessage(err error) (int, string) {
	msg := err.Error()

	// Unique constraints that have no specific error
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry") {
		return http.StatusBadRequest, "A resource with the same unique values already exists"

		// General message when a field references a non-existing resource
	} else if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(msg, "FOREIGN KEY constraint failed") || strings.Contains(msg, "a foreign key constraint fails") {
		return http.StatusBadRequest, "There is no resource for the ID you specified in the reference to another resource."

		// A general error we do not know more about
	} else {
		log.Error().Msgf("%T: %v", err, err.Error())
		return http.StatusInternalServerError, "A database error occurred during your request"
	}
}

// Handler writes the response for errors that the controllers
// do not handle themselves.
func Handler(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	var sqliteErr *sqlite.Error
	var mysqlErr *mysql.MySQLError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var parseErr *time.ParseError
	var numErr *strconv.NumError

	switch {
	// No record found => 404
	case errors.Is(err, models.ErrResourceNotFound):
		New(c, http.StatusNotFound, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		New(c, http.StatusNotFound, "There is no resource for the ID you specified")

	case errors.Is(err, models.ErrGeneral):
		New(c, http.StatusInternalServerError, err.Error())

	// Invalid input
	case errors.As(err, &validationErrors):
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, ValidationErrorToText(e))
		}
		New(c, http.StatusBadRequest, strings.Join(messages, ", "))
	case errors.Is(err, uuid.ErrInvalidUUID), errors.Is(err, types.ErrInvalidMonth), errors.Is(err, types.ErrInvalidDate):
		New(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		New(c, http.StatusBadRequest, err.Error())

	// Time could not be parsed. Return the error string as tells
	// the problem very well
	case errors.As(err, &parseErr):
		New(c, http.StatusBadRequest, err.Error())

	// Numeric query parameters like offset and limit
	case errors.As(err, &numErr):
		InvalidQueryString(c)

	// End of file reached when reading
	case errors.Is(err, io.EOF):
		New(c, http.StatusBadRequest, "The request body must not be empty")

	// Database error
	case errors.As(err, &sqliteErr), errors.As(err, &mysqlErr), errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		code, msg := DBErrorMessage(err)
		New(c, code, msg)

	// All other errors
	default:
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		New(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c)))
	}
}
