// Package resettoken issues the signed, time-limited tokens embedded in
// password-reset links, plus the reversible user-id encoding that accompanies
// them in the URL.
package resettoken

import (
	"encoding/base64"
	"errors"
	"time"

	"clinic-backend/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const purposePasswordReset = "password_reset"

var (
	ErrInvalidToken = errors.New("invalid or expired reset token")
	ErrInvalidUID   = errors.New("invalid uid encoding")
)

type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Purpose string    `json:"purpose"`
	jwt.RegisteredClaims
}

type Service struct {
	config config.ResetConfig
}

func NewService(cfg config.ResetConfig) *Service {
	return &Service{config: cfg}
}

// Generate signs a reset token for the user, valid for the configured expiry.
func (s *Service) Generate(userID uuid.UUID) (string, error) {
	claims := Claims{
		UserID:  userID,
		Purpose: purposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// Validate checks signature, expiry and purpose, returning the user the
// token was issued for.
func (s *Service) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purposePasswordReset {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.UserID, nil
}

// EncodeUID encodes a user id for use in a reset URL.
func EncodeUID(userID uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString(userID[:])
}

// DecodeUID reverses EncodeUID.
func DecodeUID(encoded string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, ErrInvalidUID
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidUID
	}
	return id, nil
}
