package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeTokenStore struct {
	tokens map[string]uuid.UUID
}

func (f *fakeTokenStore) GetOrCreate(ctx context.Context, userID uuid.UUID) (string, error) {
	return "", nil
}

func (f *fakeTokenStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, service.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, userID uuid.UUID) error { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(nil, &fakeTokenStore{}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	m.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	m := NewAuthMiddleware(nil, &fakeTokenStore{}, nil)

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		m.Authenticate(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	m := NewAuthMiddleware(nil, &fakeTokenStore{tokens: map[string]uuid.UUID{}}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer deadbeef")
	m.Authenticate(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name    string
		isAdmin interface{}
		status  int
	}{
		{"admin passes", true, http.StatusOK},
		{"non-admin forbidden", false, http.StatusForbidden},
		{"missing flag unauthorized", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.isAdmin != nil {
				req = req.WithContext(context.WithValue(req.Context(), IsAdminKey, tc.isAdmin))
			}
			RequireAdmin(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	userID := uuid.New()
	ctx := context.WithValue(context.Background(), UserIDKey, userID)
	ctx = context.WithValue(ctx, IsAdminKey, true)

	got, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	isAdmin, ok := GetIsAdminFromContext(ctx)
	assert.True(t, ok)
	assert.True(t, isAdmin)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
