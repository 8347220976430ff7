package listing

import (
	"context"
	"fmt"
	"mime/multipart"
	"slices"
	"strings"
	"unicode/utf8"

	"staybook/models"
	"staybook/services/access"
	"staybook/services/storage"
	"staybook/services/tasks"
	"staybook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRating = 4.5

// Create stores a new pending listing owned by the actor.
func (s *DefaultListingService) Create(ctx context.Context, actor access.Actor, in CreateInput, images []*multipart.FileHeader) (*models.Listing, error) {
	if err := access.Require(actor, access.CreateListing, ""); err != nil {
		return nil, err
	}

	l := &models.Listing{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(in.Title),
		Description:    strings.TrimSpace(in.Description),
		Location:       strings.TrimSpace(in.Location),
		Price:          in.Price,
		Amenities:      in.Amenities,
		MaxGuests:      in.MaxGuests,
		TourType:       strings.TrimSpace(in.TourType),
		Status:         models.ListingPending,
		Host:           actor.ID,
		RatingsAverage: models.RoundRating(defaultRating),
	}
	if l.TourType == "" {
		l.TourType = "other"
	}
	if err := validateListing(l); err != nil {
		return nil, err
	}

	assets, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		l.Images = append(l.Images, a.URL)
		l.ImagePublicIDs = append(l.ImagePublicIDs, a.PublicID)
	}

	if err := s.Repo.Create(ctx, l); err != nil {
		s.purge(ctx, l.ID, l.ImagePublicIDs, "listing create failed")
		return nil, err
	}
	utils.GetLogger().Info("Listing created", zap.String("listingId", l.ID), zap.String("host", l.Host))
	return l, nil
}

// Get returns a listing. Pending or rejected listings are visible only to
// admins and the owning host.
func (s *DefaultListingService) Get(ctx context.Context, actor access.Actor, id string) (*models.Listing, error) {
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.IsBookable() {
		if err := access.Require(actor, access.ViewUnapprovedListing, l.Host); err != nil {
			return nil, err
		}
	}
	one := []models.Listing{*l}
	if err := s.attachHosts(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// attachHosts fills HostInfo on each listing with one user query. Hosts that
// no longer exist are left empty.
func (s *DefaultListingService) attachHosts(ctx context.Context, listings []models.Listing) error {
	if s.Hosts == nil || len(listings) == 0 {
		return nil
	}
	var ids []string
	for _, l := range listings {
		if l.Host != "" && !slices.Contains(ids, l.Host) {
			ids = append(ids, l.Host)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	users, err := s.Hosts.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load listing hosts: %w", err)
	}
	byID := make(map[string]*models.HostSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}
	for i := range listings {
		listings[i].HostInfo = byID[listings[i].Host]
	}
	return nil
}

// Update applies the whitelisted fields of patch. New images replace the
// current set; the old ones are purged in the background.
func (s *DefaultListingService) Update(ctx context.Context, actor access.Actor, id string, patch models.ListingUpdate, images []*multipart.FileHeader) (*models.Listing, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.UpdateListing, current.Host); err != nil {
		return nil, err
	}

	// images only ever come from uploads
	patch.Images, patch.ImagePublicIDs = nil, nil
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	assets, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}
	var newIDs []string
	if len(assets) > 0 {
		urls := make([]string, 0, len(assets))
		for _, a := range assets {
			urls = append(urls, a.URL)
			newIDs = append(newIDs, a.PublicID)
		}
		patch.Images, patch.ImagePublicIDs = &urls, &newIDs
	}

	updated, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		s.purge(ctx, id, newIDs, "listing update failed")
		return nil, err
	}
	if len(assets) > 0 {
		s.purge(ctx, id, current.ImagePublicIDs, "listing images replaced")
	}
	return updated, nil
}

func (s *DefaultListingService) Delete(ctx context.Context, actor access.Actor, id string) error {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Require(actor, access.DeleteListing, current.Host); err != nil {
		return err
	}
	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.purge(ctx, id, deleted.ImagePublicIDs, "listing deleted")
	utils.GetLogger().Info("Listing deleted", zap.String("listingId", id), zap.String("by", actor.ID))
	return nil
}

// UpdateStatus moderates a listing.
func (s *DefaultListingService) UpdateStatus(ctx context.Context, actor access.Actor, id, status string) (*models.Listing, error) {
	if err := access.Require(actor, access.ModerateListing, ""); err != nil {
		return nil, err
	}
	if !slices.Contains(models.ListingStatuses, status) {
		return nil, ErrInvalidStatus
	}
	l, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Listing moderated", zap.String("listingId", id), zap.String("status", status))
	return l, nil
}

func (s *DefaultListingService) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]storage.Asset, error) {
	if len(files) > storage.MaxListingImages {
		return nil, storage.ErrTooManyImages
	}
	return storage.UploadFiles(ctx, s.Storage, files, storage.ListingImage)
}

// purge schedules deletion of stored images; failures are logged only.
func (s *DefaultListingService) purge(ctx context.Context, listingID string, publicIDs []string, reason string) {
	if len(publicIDs) == 0 || s.Tasks == nil {
		return
	}
	err := s.Tasks.EnqueuePurge(ctx, tasks.TypeListingPurgeImages, models.PurgePayload{
		OwnerID:   listingID,
		PublicIDs: publicIDs,
		Reason:    reason,
	})
	if err != nil {
		utils.GetLogger().Warn("Failed to schedule image purge",
			zap.String("listingId", listingID), zap.Strings("publicIds", publicIDs), zap.Error(err))
	}
}

func validateListing(l *models.Listing) error {
	return validatePatch(models.ListingUpdate{
		Title:       &l.Title,
		Description: &l.Description,
		Location:    &l.Location,
		Price:       &l.Price,
		MaxGuests:   &l.MaxGuests,
		TourType:    &l.TourType,
	})
}

func validatePatch(p models.ListingUpdate) error {
	if p.Title != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(*p.Title))
		if n < 10 || n > 100 {
			return invalid("a listing title must have between 10 and 100 characters")
		}
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return invalid("a listing must have a description")
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return invalid("a listing must have a location")
	}
	if p.Price != nil && *p.Price < 0 {
		return invalid("price must be a positive number")
	}
	if p.MaxGuests != nil && *p.MaxGuests < 1 {
		return invalid("maximum guests must be at least 1")
	}
	if p.TourType != nil && !slices.Contains(models.TourTypes, *p.TourType) {
		return invalid("tour type must be one of %s", strings.Join(models.TourTypes, ", "))
	}
	return nil
}

