package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"staybook/middleware"
	"staybook/services/user"
	"staybook/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and user administration endpoints.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	u, err := h.Users.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"user": u})
}

// UpdateMe handles PATCH /users/updateMe; accepts JSON or multipart with an
// optional "photo" file.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var patch user.ProfilePatch
	if err := c.ShouldBind(&patch); err != nil {
		badRequest(c, err)
		return
	}
	photo, err := optionalFile(c, "photo")
	if err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Users.UpdateMe(c.Request.Context(), middleware.CurrentActor(c), patch, photo)
	if err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"user": u})
}

// ListUsers handles GET /admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListAll(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	utils.JSONList(c, "users", users, nil)
}

// GetUser handles GET /admin/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"user": u})
}

// UpdateUser handles PATCH /admin/users/:id.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var patch user.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Users.AdminUpdate(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"user": u})
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondError(c, err, msgNoUserFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

func formFiles(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return form.File[field], nil
}
