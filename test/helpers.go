package test

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/budgetwise/backend/internal/httperrors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

// AssertHTTPStatus verifies that the response has one of the expected status codes.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	assert.True(t, slices.Contains(expectedStatus, r.Code), "HTTP status is wrong. Expected one of %v, got %d. Response body: %s", expectedStatus, r.Code, r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target interface{}) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}

func DecodeError(t *testing.T, s []byte) string {
	var r httperrors.HTTPError
	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}
