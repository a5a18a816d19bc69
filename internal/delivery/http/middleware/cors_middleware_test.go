package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsRequest(m *CORSMiddleware, method, origin string) (*httptest.ResponseRecorder, bool) {
	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/api/v1/specialties", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)
	return rec, nextCalled
}

func TestCORSMiddleware_DefaultAllowsAnyOrigin(t *testing.T) {
	m := NewCORSMiddleware(nil)

	rec, nextCalled := corsRequest(m, http.MethodGet, "https://anywhere.example")

	assert.True(t, nextCalled)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_EchoesConfiguredOrigin(t *testing.T) {
	m := NewCORSMiddleware([]string{"https://clinic.example"})

	rec, nextCalled := corsRequest(m, http.MethodGet, "https://clinic.example")

	assert.True(t, nextCalled)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSMiddleware_RejectsUnknownOrigin(t *testing.T) {
	m := NewCORSMiddleware([]string{"https://clinic.example"})

	rec, nextCalled := corsRequest(m, http.MethodGet, "https://evil.example")

	// The request still runs; the browser just gets no allow header.
	assert.True(t, nextCalled)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	m := NewCORSMiddleware([]string{"*"})

	rec, nextCalled := corsRequest(m, http.MethodOptions, "https://anywhere.example")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
