package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/models"
	"staybook/services/availability"
)

var today = day(2024, time.June, 1)

func newChecker(store *memStore) *availability.Checker {
	return availability.NewChecker(store, store, availability.FixedClock{At: today.Add(13 * time.Hour)}, time.UTC)
}

func req(listingID string, in, out time.Time, guests int) availability.Request {
	return availability.Request{ListingID: listingID, CheckIn: in, CheckOut: out, NumGuests: guests}
}

func TestCheck_AllowsAndReturnsNormalizedDates(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)

	in := time.Date(2024, 7, 1, 16, 0, 0, 0, time.UTC)
	out := time.Date(2024, 7, 4, 10, 0, 0, 0, time.UTC)
	dec, err := newChecker(store).Check(context.Background(), req("L1", in, out, 2))

	require.NoError(t, err)
	assert.Equal(t, "L1", dec.Listing.ID)
	assert.Equal(t, day(2024, 7, 1), dec.Interval.CheckIn)
	assert.Equal(t, day(2024, 7, 4), dec.Interval.CheckOut)
}

func TestCheck_AdjacentBookingsDoNotConflict(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	store.addBooking("L1", day(2024, 7, 1), day(2024, 7, 5))

	_, err := newChecker(store).Check(context.Background(), req("L1", day(2024, 7, 5), day(2024, 7, 10), 1))
	assert.NoError(t, err)

	_, err = newChecker(store).Check(context.Background(), req("L1", day(2024, 6, 25), day(2024, 7, 1), 1))
	assert.NoError(t, err)
}

func TestCheck_PartialContainmentRejected(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	store.addBooking("L1", day(2024, 7, 1), day(2024, 7, 5))

	_, err := newChecker(store).Check(context.Background(), req("L1", day(2024, 7, 2), day(2024, 7, 4), 1))
	assert.ErrorIs(t, err, availability.ErrDatesUnavailable)
}

func TestCheck_BookingsOnOtherListingsIgnored(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	store.addListing("L2", models.ListingApproved, 4)
	store.addBooking("L2", day(2024, 7, 1), day(2024, 7, 5))

	_, err := newChecker(store).Check(context.Background(), req("L1", day(2024, 7, 1), day(2024, 7, 5), 1))
	assert.NoError(t, err)
}

func TestCheck_SameDayRejectedRegardlessOfListingState(t *testing.T) {
	store := newMemStore()
	store.addListing("approved", models.ListingApproved, 4)
	store.addListing("pending", models.ListingPending, 4)
	store.addListing("rejected", models.ListingRejected, 4)

	morning := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	night := time.Date(2024, 7, 1, 23, 0, 0, 0, time.UTC)
	for _, id := range []string{"approved", "pending", "rejected", "missing"} {
		_, err := newChecker(store).Check(context.Background(), req(id, morning, night, 1))
		assert.ErrorIs(t, err, availability.ErrInvalidDateRange, id)
	}
}

func TestCheck_InvertedRangeRejected(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)

	_, err := newChecker(store).Check(context.Background(), req("L1", day(2024, 7, 5), day(2024, 7, 1), 1))
	assert.ErrorIs(t, err, availability.ErrInvalidDateRange)
}

func TestCheck_PastCheckIn(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	c := newChecker(store)

	_, err := c.Check(context.Background(), req("L1", day(2024, 5, 31), day(2024, 6, 3), 1))
	assert.ErrorIs(t, err, availability.ErrInvalidDateRange)

	_, err = c.Check(context.Background(), req("L1", day(2024, 6, 1), day(2024, 6, 3), 1))
	assert.NoError(t, err, "today is a valid check-in")
}

func TestCheck_GuestCapacity(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	c := newChecker(store)

	_, err := c.Check(context.Background(), req("L1", day(2024, 7, 1), day(2024, 7, 2), 5))
	require.ErrorIs(t, err, availability.ErrGuestsExceedMax)
	var capErr *availability.GuestsExceedMaxError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 4, capErr.MaxGuests)

	_, err = c.Check(context.Background(), req("L1", day(2024, 7, 1), day(2024, 7, 2), 4))
	assert.NoError(t, err)
}

func TestCheck_NonApprovedListing(t *testing.T) {
	store := newMemStore()
	store.addListing("pending", models.ListingPending, 4)
	store.addListing("rejected", models.ListingRejected, 4)

	for _, id := range []string{"pending", "rejected"} {
		_, err := newChecker(store).Check(context.Background(), req(id, day(2024, 7, 1), day(2024, 7, 2), 1))
		assert.ErrorIs(t, err, availability.ErrListingUnavailable, id)
	}
}

func TestCheck_MissingListing(t *testing.T) {
	_, err := newChecker(newMemStore()).Check(context.Background(), req("nope", day(2024, 7, 1), day(2024, 7, 2), 1))
	assert.ErrorIs(t, err, availability.ErrListingNotFound)
}

func TestCheck_ListingStateBeforeCapacityAndPastDate(t *testing.T) {
	store := newMemStore()
	store.addListing("pending", models.ListingPending, 1)

	// Past check-in and too many guests, but the listing state wins.
	_, err := newChecker(store).Check(context.Background(), req("pending", day(2024, 5, 1), day(2024, 5, 3), 9))
	assert.ErrorIs(t, err, availability.ErrListingUnavailable)
}

func TestCheck_IdempotentRead(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	store.addBooking("L1", day(2024, 7, 1), day(2024, 7, 5))
	c := newChecker(store)

	r := req("L1", day(2024, 7, 3), day(2024, 7, 6), 2)
	_, first := c.Check(context.Background(), r)
	_, second := c.Check(context.Background(), r)
	assert.ErrorIs(t, first, availability.ErrDatesUnavailable)
	assert.Equal(t, first, second)
	assert.Len(t, store.bookings, 1, "checker must not write")

	ok := req("L1", day(2024, 7, 5), day(2024, 7, 6), 2)
	d1, err1 := c.Check(context.Background(), ok)
	d2, err2 := c.Check(context.Background(), ok)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, d1.Interval, d2.Interval)
}

type failingFinder struct{ memStore }

func (f *failingFinder) FindOverlapping(context.Context, string, availability.Interval) ([]models.Booking, error) {
	return nil, errors.New("connection reset")
}

func TestCheck_PropagatesRepositoryErrors(t *testing.T) {
	store := newMemStore()
	store.addListing("L1", models.ListingApproved, 4)
	c := availability.NewChecker(store, &failingFinder{}, availability.FixedClock{At: today}, time.UTC)

	_, err := c.Check(context.Background(), req("L1", day(2024, 7, 1), day(2024, 7, 2), 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NotErrorIs(t, err, availability.ErrDatesUnavailable)
}
