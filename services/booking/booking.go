package booking

import (
	"context"
	"fmt"
	"time"

	"staybook/models"
	"staybook/services/access"
	"staybook/services/availability"
	"staybook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates availability and persists the booking with normalized dates.
func (s *DefaultBookingService) Create(ctx context.Context, actor access.Actor, req CreateRequest) (*models.Booking, error) {
	if err := access.Require(actor, access.CreateBooking, ""); err != nil {
		return nil, err
	}

	unlock, err := s.Guard.Locker.Lock(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	decision, err := s.Checker.Check(ctx, availability.Request{
		ListingID: req.ListingID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		NumGuests: req.NumGuests,
	})
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:           uuid.NewString(),
		ListingID:    decision.Listing.ID,
		UserID:       actor.ID,
		CheckInDate:  decision.Interval.CheckIn,
		CheckOutDate: decision.Interval.CheckOut,
		NumGuests:    req.NumGuests,
		TotalPrice:   req.TotalPrice,
		Paid:         true,
		CreatedAt:    time.Now(),
	}

	insert := s.Repo.Create
	if s.Guard.Transactional {
		insert = s.Repo.CreateExclusive
	}
	if err := insert(ctx, b); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("listingId", b.ListingID),
		zap.String("userId", b.UserID),
		zap.Time("checkIn", b.CheckInDate),
		zap.Time("checkOut", b.CheckOutDate),
		zap.String("guard", s.Guard.Mode),
	)
	return b, nil
}

func (s *DefaultBookingService) ListMine(ctx context.Context, actor access.Actor) ([]models.Booking, error) {
	if actor.IsAnonymous() {
		return nil, access.ErrForbidden
	}
	bookings, err := s.Repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// ListForListing returns a listing's booked stays. Only admins see the
// guest and price of each booking.
func (s *DefaultBookingService) ListForListing(ctx context.Context, actor access.Actor, listingID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	if access.Can(actor, access.ReadAllBookings, "") {
		return bookings, nil
	}
	for i := range bookings {
		bookings[i].UserID = ""
		bookings[i].TotalPrice = 0
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListAll(ctx context.Context, actor access.Actor) ([]models.Booking, error) {
	if err := access.Require(actor, access.ReadAllBookings, ""); err != nil {
		return nil, err
	}
	bookings, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// Get returns a booking to its guest or an admin.
func (s *DefaultBookingService) Get(ctx context.Context, actor access.Actor, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, access.ReadBooking, b.UserID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.DeleteBooking, ""); err != nil {
		return err
	}
	b, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	utils.GetLogger().Info("Booking deleted",
		zap.String("bookingId", b.ID),
		zap.String("listingId", b.ListingID),
		zap.String("by", actor.ID),
	)
	return nil
}
