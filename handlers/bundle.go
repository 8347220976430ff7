package handlers

import (
	userRepoPkg "staybook/database/repository/user"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers plus what the auth middleware needs.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache *redis.Client

	Auth     *AuthHandler
	Users    *UserHandler
	Listings *ListingHandler
	Bookings *BookingHandler
}
