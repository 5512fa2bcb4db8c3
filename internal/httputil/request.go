// Package httputil contains helpers to process requests.
package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/budgetwise/backend/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		// These errors describe the problem well enough to be returned to the user
		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		var validationErrors validator.ValidationErrors
		if errors.As(err, &jsonUnmarshalTypeError) || errors.As(err, &validationErrors) || errors.Is(err, types.ErrInvalidMonth) || errors.Is(err, types.ErrInvalidDate) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// GetURLFields returns the names of all fields of the filter struct
// that are set in the query string of the URL. The query parameter name
// of a field is read from its "form" tag.
func GetURLFields(url *url.URL, filter any) []string {
	var setFields []string

	query := url.Query()
	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		param := field.Tag.Get("form")

		if param != "" && query.Has(param) {
			setFields = append(setFields, field.Name)
		}
	}

	return setFields
}

// GetBodyFields returns a slice with the field names
// of the resource passed in. Only names of fields which are set
// in the body are contained in that slice.
//
// This function reads and copies the request body, it must always
// be called before any of gin's c.*Bind methods.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	mapBody, err := bodyMap(c)
	if err != nil {
		return nil, err
	}

	return jsonFields(resource, func(param string) bool {
		_, ok := mapBody[param]
		return ok
	}), nil
}

// GetNullBodyFields returns the names of the fields of the resource
// that are explicitly set to null in the body.
//
// Like GetBodyFields, it must be called before any of gin's c.*Bind methods.
func GetNullBodyFields(c *gin.Context, resource any) ([]any, error) {
	mapBody, err := bodyMap(c)
	if err != nil {
		return nil, err
	}

	return jsonFields(resource, func(param string) bool {
		value, ok := mapBody[param]
		return ok && value == nil
	}), nil
}

// bodyMap parses the request body into a map and restores the body
// so that it can be read again.
func bodyMap(c *gin.Context) (map[string]any, error) {
	// Copy the body to be able to use it multiple times
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrRequestBodyEmpty
	}

	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return nil, ErrInvalidBody
	}

	return mapBody, nil
}

// jsonFields returns the names of all fields of resource for which
// match returns true for the JSON name of the field.
func jsonFields(resource any, match func(param string) bool) []any {
	var fields []any
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		param, _, _ := strings.Cut(field.Tag.Get("json"), ",")

		if match(param) {
			fields = append(fields, field.Name)
		}
	}

	return fields
}
