package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinic-backend/internal/domain/repository"
	"clinic-backend/internal/service"
	"clinic-backend/pkg/response"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
)

type AuthMiddleware struct {
	db         *gorm.DB
	tokenStore service.TokenStore
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(db *gorm.DB, tokenStore service.TokenStore, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		db:         db,
		tokenStore: tokenStore,
		userRepo:   userRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		userID, err := m.tokenStore.Resolve(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, service.ErrTokenNotFound) {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}
			response.InternalServerError(w, "Failed to validate token")
			return
		}

		// The admin flag lives in the database, not in the token, so a
		// privilege change takes effect on the next request.
		user, err := m.userRepo.FindByID(m.db.WithContext(r.Context()), userID)
		if err != nil {
			response.InternalServerError(w, "Failed to load user")
			return
		}
		if user == nil || !user.Active() {
			response.Unauthorized(w, "Account is inactive")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, IsAdminKey, user.IsAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the authenticated user id from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetIsAdminFromContext extracts the admin flag from context
func GetIsAdminFromContext(ctx context.Context) (bool, bool) {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return isAdmin, ok
}
