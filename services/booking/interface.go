package booking

import (
	"context"
	"time"

	bookingRepo "staybook/database/repository/booking"
	"staybook/models"
	"staybook/services/access"
	"staybook/services/availability"
)

// CreateRequest is a guest's booking request. Dates are calendar dates.
type CreateRequest struct {
	ListingID  string
	CheckIn    time.Time
	CheckOut   time.Time
	NumGuests  int
	TotalPrice float64
}

// BookingService defines booking operations.
type BookingService interface {
	Create(ctx context.Context, actor access.Actor, req CreateRequest) (*models.Booking, error)
	ListMine(ctx context.Context, actor access.Actor) ([]models.Booking, error)
	ListForListing(ctx context.Context, actor access.Actor, listingID string) ([]models.Booking, error)
	ListAll(ctx context.Context, actor access.Actor) ([]models.Booking, error)
	Get(ctx context.Context, actor access.Actor, id string) (*models.Booking, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Checker *availability.Checker
	Guard   Guard
}

func NewBookingService(repo bookingRepo.BookingRepository, checker *availability.Checker, guard Guard) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo, Checker: checker, Guard: guard}
}
