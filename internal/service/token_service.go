package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenStore issues opaque login tokens: one token per user, created on first
// login and reused until logout deletes it.
type TokenStore interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func userKey(userID uuid.UUID) string {
	return fmt.Sprintf("auth_token:user:%s", userID.String())
}

func tokenKey(token string) string {
	return fmt.Sprintf("auth_token:%s", token)
}

func (s *redisTokenStore) GetOrCreate(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.client.Get(ctx, userKey(userID)).Result()
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token = hex.EncodeToString(raw)

	// Tokens have no TTL; they live until logout.
	if err := s.client.Set(ctx, userKey(userID), token, 0).Err(); err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, tokenKey(token), userID.String(), 0).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *redisTokenStore) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrTokenNotFound
	}
	return userID, nil
}

func (s *redisTokenStore) Delete(ctx context.Context, userID uuid.UUID) error {
	token, err := s.client.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.client.Del(ctx, userKey(userID), tokenKey(token)).Err()
}
