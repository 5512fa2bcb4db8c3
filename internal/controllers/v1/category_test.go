package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/budgetwise/backend/internal/controllers/v1"
	"github.com/budgetwise/backend/internal/models"
	"github.com/budgetwise/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	token, _ := suite.createTestUser(suite.T())

	category := suite.createTestCategory(suite.T(), token, " Groceries ")
	suite.Assert().Equal("Groceries", category.Data.Name)

	tests := []struct {
		name string
		body any
		err  string
	}{
		{"Duplicate name", v1.CategoryEditable{Name: "Groceries"}, models.ErrCategoryNameNotUnique.Error()},
		{"Empty name", v1.CategoryEditable{Name: "  "}, "the name must be set"},
		{"Empty body", "", "the request body must not be empty"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, token, http.MethodPost, "http://example.com/v1/categories", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesShared() {
	token, _ := suite.createTestUser(suite.T())
	other, _ := suite.createTestUser(suite.T())
	category := suite.createTestCategory(suite.T(), token, "Rent")

	r := suite.request(suite.T(), other, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCategoriesList() {
	token, _ := suite.createTestUser(suite.T())
	for _, name := range []string{"Food", "Fast food", "Rent", "Fuel"} {
		suite.createTestCategory(suite.T(), token, name)
	}

	tests := []struct {
		name  string
		query string
		names []string
		total int64
	}{
		{"All", "", []string{"Fast food", "Food", "Fuel", "Rent"}, 4},
		{"Glob prefix", "name=F*", []string{"Fast food", "Food", "Fuel"}, 3},
		{"Glob ignores case", "name=*FOOD", []string{"Fast food", "Food"}, 2},
		{"Exact name", "name=rent", []string{"Rent"}, 1},
		{"No match", "name=Travel*", []string{}, 0},
		{"Paginated", "name=F*&offset=1&limit=1", []string{"Food"}, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, "http://example.com/v1/categories?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var list v1.CategoryListResponse
			test.DecodeResponse(t, &r, &list)

			names := make([]string, 0, len(list.Data))
			for _, category := range list.Data {
				names = append(names, category.Name)
			}
			assert.Equal(t, tt.names, names)
			assert.Equal(t, tt.total, list.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	token, _ := suite.createTestUser(suite.T())
	category := suite.createTestCategory(suite.T(), token, "Rent")

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing Category", category.Data.ID.String(), http.StatusOK},
		{"ID nil", uuid.Nil.String(), http.StatusNotFound},
		{"No Category with this ID", uuid.NewString(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), nil)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNotFound {
				assert.Equal(t, "there is no category matching your query", test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}

	r := suite.request(suite.T(), token, http.MethodOptions, fmt.Sprintf("http://example.com/v1/categories/%s", category.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestTags() {
	token, _ := suite.createTestUser(suite.T())

	trip := suite.createTestTag(suite.T(), token, "trip-italy")
	suite.createTestTag(suite.T(), token, "trip-spain")
	suite.createTestTag(suite.T(), token, "gift")

	// Tag names do not need to be unique
	suite.createTestTag(suite.T(), token, "gift")

	r := suite.request(suite.T(), token, http.MethodGet, "http://example.com/v1/tags?name=trip-*", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.TagListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Equal([]string{"trip-italy", "trip-spain"}, tagNames(list.Data))

	r = suite.request(suite.T(), token, http.MethodGet, fmt.Sprintf("http://example.com/v1/tags/%s", trip.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var tag v1.TagResponse
	test.DecodeResponse(suite.T(), &r, &tag)
	suite.Assert().Equal("trip-italy", tag.Data.Name)

	r = suite.request(suite.T(), token, http.MethodGet, fmt.Sprintf("http://example.com/v1/tags/%s", uuid.NewString()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(suite.T(), token, http.MethodPost, "http://example.com/v1/tags", v1.TagEditable{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.T(), token, http.MethodOptions, "http://example.com/v1/tags", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	token, _ := suite.createTestUser(suite.T())
	suite.CloseDB()

	for _, path := range []string{"/v1/categories", "/v1/tags"} {
		suite.T().Run(path, func(t *testing.T) {
			r := suite.request(t, token, http.MethodGet, "http://example.com"+path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
		})
	}
}
