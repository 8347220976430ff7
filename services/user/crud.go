package user

import (
	"context"
	"mime/multipart"
	"slices"
	"strings"

	"staybook/models"
	"staybook/services/access"
	"staybook/services/storage"
	"staybook/services/tasks"
	"staybook/utils"

	"go.uber.org/zap"
)

var roles = []string{models.RoleUser, models.RoleHost, models.RoleAdmin}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateMe changes the caller's own name, email and photo.
func (s *DefaultUserService) UpdateMe(ctx context.Context, actor access.Actor, patch ProfilePatch, photo *multipart.FileHeader) (*models.User, error) {
	if actor.IsAnonymous() {
		return nil, access.ErrForbidden
	}
	if patch.Password != nil {
		return nil, ErrPasswordUpdate
	}
	upd, err := buildUpdate(patch, false)
	if err != nil {
		return nil, err
	}

	current, err := s.Repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var newPhotoID string
	if photo != nil {
		assets, err := storage.UploadFiles(ctx, s.Storage, []*multipart.FileHeader{photo}, storage.UserPhoto)
		if err != nil {
			return nil, err
		}
		newPhotoID = assets[0].PublicID
		upd.Photo = &assets[0].URL
		upd.PhotoPublicID = &newPhotoID
	}
	if upd.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	updated, err := s.Repo.Update(ctx, actor.ID, upd)
	if err != nil {
		s.purgePhoto(ctx, actor.ID, newPhotoID, "profile update failed")
		return nil, wrapDuplicate(err)
	}
	if newPhotoID != "" {
		s.purgePhoto(ctx, actor.ID, current.PhotoPublicID, "photo replaced")
	}
	s.invalidate(ctx, actor.ID)
	return updated, nil
}

func (s *DefaultUserService) ListAll(ctx context.Context, actor access.Actor) ([]models.User, error) {
	if err := access.Require(actor, access.ManageUsers, ""); err != nil {
		return nil, err
	}
	return s.Repo.GetAll(ctx)
}

// AdminUpdate lets an admin change name, email, role and photo URL.
func (s *DefaultUserService) AdminUpdate(ctx context.Context, actor access.Actor, id string, patch ProfilePatch) (*models.User, error) {
	if err := access.Require(actor, access.ManageUsers, ""); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		return nil, ErrPasswordUpdate
	}
	upd, err := buildUpdate(patch, true)
	if err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	updated, err := s.Repo.Update(ctx, id, upd)
	if err != nil {
		return nil, wrapDuplicate(err)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *DefaultUserService) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.ManageUsers, ""); err != nil {
		return err
	}
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.purgePhoto(ctx, id, deleted.PhotoPublicID, "user deleted")
	utils.GetLogger().Info("User deleted", zap.String("userId", id), zap.String("by", actor.ID))
	return nil
}

// buildUpdate applies the field whitelist; role is only accepted from admins.
func buildUpdate(p ProfilePatch, allowRole bool) (models.UserUpdate, error) {
	var upd models.UserUpdate
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return upd, invalid("name cannot be empty")
		}
		upd.Name = &name
	}
	if p.Email != nil {
		email, err := normalizeEmail(*p.Email)
		if err != nil {
			return upd, err
		}
		upd.Email = &email
	}
	if p.Photo != nil {
		photo := strings.TrimSpace(*p.Photo)
		upd.Photo = &photo
	}
	if allowRole && p.Role != nil {
		if !slices.Contains(roles, *p.Role) {
			return upd, invalid("role must be one of %s", strings.Join(roles, ", "))
		}
		upd.Role = p.Role
	}
	return upd, nil
}

func (s *DefaultUserService) invalidate(ctx context.Context, userID string) {
	if err := utils.InvalidateAuthUser(ctx, s.AuthCache, userID); err != nil {
		utils.GetLogger().Warn("Failed to invalidate auth cache", zap.String("userId", userID), zap.Error(err))
	}
}

func (s *DefaultUserService) purgePhoto(ctx context.Context, userID, publicID, reason string) {
	if publicID == "" || s.Tasks == nil {
		return
	}
	err := s.Tasks.EnqueuePurge(ctx, tasks.TypeUserPurgePhoto, models.PurgePayload{
		OwnerID:   userID,
		PublicIDs: []string{publicID},
		Reason:    reason,
	})
	if err != nil {
		utils.GetLogger().Warn("Failed to schedule photo purge", zap.String("userId", userID), zap.Error(err))
	}
}
