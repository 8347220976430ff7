// File: utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staybook/models"

	"github.com/go-redis/redis/v8"
)

// cachedUser mirrors models.User including fields hidden from JSON responses.
type cachedUser struct {
	models.User
	PasswordChangedAtUnix int64 `json:"pwdChangedAt,omitempty"`
}

// CacheAuthUser stores the authenticated user so protected requests can skip
// the database. A nil client disables caching.
func CacheAuthUser(ctx context.Context, client *redis.Client, user *models.User) error {
	if client == nil || user == nil {
		return nil
	}
	entry := cachedUser{User: *user}
	if user.PasswordChangedAt != nil {
		entry.PasswordChangedAtUnix = user.PasswordChangedAt.Unix()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal auth user: %w", err)
	}
	if err := client.Set(ctx, AuthCachePrefix+user.ID, data, AuthCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache auth user: %w", err)
	}
	return nil
}

// GetCachedAuthUser returns the cached user, or redis.Nil on a miss.
func GetCachedAuthUser(ctx context.Context, client *redis.Client, userID string) (*models.User, error) {
	if client == nil {
		return nil, redis.Nil
	}
	data, err := client.Get(ctx, AuthCachePrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	var entry cachedUser
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth user: %w", err)
	}
	user := entry.User
	if entry.PasswordChangedAtUnix > 0 {
		t := time.Unix(entry.PasswordChangedAtUnix, 0)
		user.PasswordChangedAt = &t
	}
	return &user, nil
}

// InvalidateAuthUser drops the cached entry after profile changes or deletion.
func InvalidateAuthUser(ctx context.Context, client *redis.Client, userID string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, AuthCachePrefix+userID).Err()
}
