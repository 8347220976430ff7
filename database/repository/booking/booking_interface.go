package bookingRepo

import (
	"context"

	"staybook/models"
	"staybook/services/availability"
)

// BookingRepository defines methods for booking data access. It satisfies
// availability.BookingFinder.
type BookingRepository interface {
	// FindOverlapping returns bookings for listingID whose stay overlaps iv.
	FindOverlapping(ctx context.Context, listingID string, iv availability.Interval) ([]models.Booking, error)
	// FindOverlappingAny returns bookings on any listing overlapping iv.
	FindOverlappingAny(ctx context.Context, iv availability.Interval) ([]models.Booking, error)

	Create(ctx context.Context, booking *models.Booking) error
	// CreateExclusive re-checks overlap and inserts inside a transaction that
	// also bumps the listing's booking sequence, so two concurrent bookers of
	// the same listing conflict. Requires a replica set.
	CreateExclusive(ctx context.Context, booking *models.Booking) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByListing(ctx context.Context, listingID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	Delete(ctx context.Context, id string) (*models.Booking, error)
}
