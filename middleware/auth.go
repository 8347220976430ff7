package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"staybook/database/repository"
	userRepo "staybook/database/repository/user"
	"staybook/models"
	"staybook/services/access"
	"staybook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// UserKey is the gin context key holding the authenticated *models.User.
	UserKey = "user"

	// LoggedOutCookie is the placeholder value written to the jwt cookie on logout.
	LoggedOutCookie = "loggedout"

	msgTokenMissing    = "No token, authorization denied"
	msgTokenInvalid    = "Token is not valid"
	msgTokenExpired    = "Your token has expired! Please log in again."
	msgPasswordChanged = "User recently changed password! Please log in again."
)

var (
	errNoToken         = errors.New("no token")
	errUserGone        = errors.New("user no longer exists")
	errPasswordChanged = errors.New("password changed after token was issued")
)

// Protect rejects requests without a valid token for an existing user.
// The token is read from the Authorization bearer header, then the jwt cookie.
func Protect(users userRepo.UserRepository, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, users, cache)
		if err != nil {
			switch {
			case errors.Is(err, errNoToken):
				utils.JSONError(c, http.StatusUnauthorized, msgTokenMissing, "")
			case errors.Is(err, utils.ErrTokenExpired):
				utils.JSONError(c, http.StatusUnauthorized, msgTokenExpired, "")
			case errors.Is(err, errPasswordChanged):
				utils.JSONError(c, http.StatusUnauthorized, msgPasswordChanged, "")
			case errors.Is(err, utils.ErrTokenInvalid), errors.Is(err, errUserGone):
				utils.JSONError(c, http.StatusUnauthorized, msgTokenInvalid, "")
			default:
				utils.GetLogger().Error("Protect: failed to load user", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
			}
			return
		}
		c.Set(UserKey, user)
		c.Next()
	}
}

// IsLoggedIn attaches the user when the request carries a valid token and
// otherwise lets the request through anonymously.
func IsLoggedIn(users userRepo.UserRepository, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := authenticate(c, users, cache); err == nil {
			c.Set(UserKey, user)
		}
		c.Next()
	}
}

// RestrictTo must run after Protect.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !slices.Contains(roles, user.Role) {
			utils.JSONError(c, http.StatusForbidden, access.ErrForbidden.Error(), "")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentActor returns the access actor of the request; anonymous when not logged in.
func CurrentActor(c *gin.Context) access.Actor {
	return access.ActorOf(CurrentUser(c))
}

func authenticate(c *gin.Context, users userRepo.UserRepository, cache *redis.Client) (*models.User, error) {
	token := extractToken(c)
	if token == "" {
		return nil, errNoToken
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := loadUser(c.Request.Context(), users, cache, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user.ChangedPasswordAfter(claims.IssuedAt) {
		return nil, errPasswordChanged
	}
	return user, nil
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie("jwt"); err == nil && cookie != LoggedOutCookie {
		return cookie
	}
	return ""
}

// loadUser reads through the auth cache; a cache failure falls back to Mongo.
func loadUser(ctx context.Context, users userRepo.UserRepository, cache *redis.Client, id string) (*models.User, error) {
	user, err := utils.GetCachedAuthUser(ctx, cache, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, redis.Nil) {
		utils.GetLogger().Warn("Auth cache read failed", zap.String("userId", id), zap.Error(err))
	}

	user, err = users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errUserGone
		}
		return nil, err
	}
	if err := utils.CacheAuthUser(ctx, cache, user); err != nil {
		utils.GetLogger().Warn("Auth cache write failed", zap.String("userId", id), zap.Error(err))
	}
	return user, nil
}
