package user

import (
	"context"
	"mime/multipart"
	"time"

	userRepo "staybook/database/repository/user"
	"staybook/models"
	"staybook/services/access"
	"staybook/services/storage"
	"staybook/services/tasks"

	"github.com/go-redis/redis/v8"
)

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// ProfilePatch carries the fields a caller asked to change. Password is only
// present so that attempts can be rejected.
type ProfilePatch struct {
	Name     *string `json:"name" form:"name"`
	Email    *string `json:"email" form:"email"`
	Role     *string `json:"role" form:"role"`
	Photo    *string `json:"photo" form:"photo"`
	Password *string `json:"password" form:"password"`
}

// AuthResponse contains the signed token and the user it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateMe(ctx context.Context, actor access.Actor, patch ProfilePatch, photo *multipart.FileHeader) (*models.User, error)
	ListAll(ctx context.Context, actor access.Actor) ([]models.User, error)
	AdminUpdate(ctx context.Context, actor access.Actor, id string, patch ProfilePatch) (*models.User, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo             userRepo.UserRepository
	Storage          storage.StorageService
	Tasks            tasks.Enqueuer
	AuthCache        *redis.Client
	TokenTTL         time.Duration
	AllowAdminSignup bool
}

func NewUserService(repo userRepo.UserRepository, store storage.StorageService, enq tasks.Enqueuer, cache *redis.Client, tokenTTL time.Duration, allowAdminSignup bool) *DefaultUserService {
	return &DefaultUserService{
		Repo:             repo,
		Storage:          store,
		Tasks:            enq,
		AuthCache:        cache,
		TokenTTL:         tokenTTL,
		AllowAdminSignup: allowAdminSignup,
	}
}
