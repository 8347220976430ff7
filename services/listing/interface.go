package listing

import (
	"context"
	"mime/multipart"
	"time"

	listingRepo "staybook/database/repository/listing"
	"staybook/models"
	"staybook/services/access"
	"staybook/services/availability"
	"staybook/services/storage"
	"staybook/services/tasks"
)

// CreateInput carries the fields of a new listing.
type CreateInput struct {
	Title       string   `json:"title" form:"title"`
	Description string   `json:"description" form:"description"`
	Location    string   `json:"location" form:"location"`
	Price       float64  `json:"price" form:"price"`
	Amenities   []string `json:"amenities" form:"amenities"`
	MaxGuests   int      `json:"maxGuests" form:"maxGuests"`
	TourType    string   `json:"tourType" form:"tourType"`
}

// SearchResult is one page of listings.
type SearchResult struct {
	Listings   []models.Listing
	Pagination models.Pagination
}

// ListingService defines listing operations.
type ListingService interface {
	Create(ctx context.Context, actor access.Actor, in CreateInput, images []*multipart.FileHeader) (*models.Listing, error)
	Get(ctx context.Context, actor access.Actor, id string) (*models.Listing, error)
	Update(ctx context.Context, actor access.Actor, id string, patch models.ListingUpdate, images []*multipart.FileHeader) (*models.Listing, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
	UpdateStatus(ctx context.Context, actor access.Actor, id, status string) (*models.Listing, error)
	Search(ctx context.Context, actor access.Actor, p SearchParams) (*SearchResult, error)
}

// HostLookup loads the hosts shown on listings. The user repository satisfies it.
type HostLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
}

// DefaultListingService is the production implementation.
type DefaultListingService struct {
	Repo     listingRepo.ListingRepository
	Hosts    HostLookup
	Filter   *availability.Filter
	Storage  storage.StorageService
	Tasks    tasks.Enqueuer
	Location *time.Location
}

func NewListingService(repo listingRepo.ListingRepository, hosts HostLookup, filter *availability.Filter, store storage.StorageService, enq tasks.Enqueuer, loc *time.Location) *DefaultListingService {
	return &DefaultListingService{Repo: repo, Hosts: hosts, Filter: filter, Storage: store, Tasks: enq, Location: loc}
}
