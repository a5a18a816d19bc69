package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, "Created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Created", resp.Message)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	FieldErrors(rec, map[string]string{
		"dni":   "must contain exactly 8 digits",
		"email": "is required",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed", resp.Message)

	fields, ok := resp.Error.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
	assert.Equal(t, "must contain exactly 8 digits", fields["dni"])
}

func TestStatusHelpers(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(http.ResponseWriter, string)
		status int
		msg    string
	}{
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", Forbidden, http.StatusForbidden, "Forbidden"},
		{"not found", NotFound, http.StatusNotFound, "Resource not found"},
		{"conflict", Conflict, http.StatusConflict, "Conflict"},
		{"internal", InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.fn(rec, "")

			assert.Equal(t, tc.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.msg, resp.Message)
		})
	}
}
