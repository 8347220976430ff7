package handlers

import (
	"errors"
	"net/http"

	"staybook/middleware"
	"staybook/models"
	"staybook/services/user"
	"staybook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Users user.UserService
	// CookieDays is the lifetime of the jwt cookie.
	CookieDays int
	// SecureCookie restricts the cookie to HTTPS.
	SecureCookie bool
}

func NewAuthHandler(users user.UserService, cookieDays int, secure bool) *AuthHandler {
	return &AuthHandler{Users: users, CookieDays: cookieDays, SecureCookie: secure}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	h.sendToken(c, http.StatusCreated, res)
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			getLogger(c).Info("Failed login attempt", zap.String("email", req.Email))
		}
		respondError(c, err, msgNoUserFound)
		return
	}
	h.sendToken(c, http.StatusOK, res)
}

// Logout replaces the jwt cookie with a short-lived placeholder.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("jwt", middleware.LoggedOutCookie, 10, "/", "", h.SecureCookie, true)
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, nil)
}

func (h *AuthHandler) sendToken(c *gin.Context, status int, res *user.AuthResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("jwt", res.Token, h.CookieDays*24*60*60, "/", "", h.SecureCookie, true)
	c.JSON(status, utils.Envelope{
		Status:  "success",
		Message: utils.MsgSuccess,
		Token:   res.Token,
		Data:    gin.H{"user": publicUser(res.User)},
	})
}

func publicUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}
