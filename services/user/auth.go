package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"staybook/database/repository"
	"staybook/models"
	"staybook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// Register creates an account and signs a token for it. A requested host
// role is honoured; admin only when self-registration of admins is enabled.
func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("please tell us your name")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return nil, invalid("password must be at least %d characters long", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         s.signupRole(in.Role),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	utils.GetLogger().Info("User registered", zap.String("userId", u.ID), zap.String("role", u.Role))
	return s.issue(u)
}

func (s *DefaultUserService) signupRole(requested string) string {
	switch requested {
	case models.RoleHost:
		return models.RoleHost
	case models.RoleAdmin:
		if s.AllowAdminSignup {
			return models.RoleAdmin
		}
	}
	return models.RoleUser
}

// Login verifies credentials and signs a token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, invalid("please provide email and password")
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *DefaultUserService) issue(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, s.TokenTTL)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return &AuthResponse{Token: token, User: u}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("please provide a valid email")
	}
	return email, nil
}
