package listingRepo

import (
	"context"

	"staybook/models"
)

// RangeFilter is a numeric comparison on a listing field, e.g. price >= 100.
// Op is one of gte, gt, lte, lt.
type RangeFilter struct {
	Field string
	Op    string
	Value float64
}

// SortField orders search results by Field, descending when Desc is set.
type SortField struct {
	Field string
	Desc  bool
}

// SearchCriteria describes a listing search. Empty values are not applied.
type SearchCriteria struct {
	Status     string // "" means any status
	Location   string // case-insensitive substring
	MinGuests  int
	TourType   string
	Ranges     []RangeFilter
	ExcludeIDs []string
	Sort       []SortField
	Fields     []string
	Skip       int64
	Limit      int64
}

// ListingRepository defines methods for listing data access.
type ListingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, id string, upd models.ListingUpdate) (*models.Listing, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Listing, error)
	Delete(ctx context.Context, id string) (*models.Listing, error)
	// Search returns one page of matching listings and the total match count.
	Search(ctx context.Context, c SearchCriteria) ([]models.Listing, int64, error)
}
