package availability_test

import (
	"context"
	"sync"
	"time"

	"staybook/database/repository"
	"staybook/models"
	"staybook/services/availability"
)

type memStore struct {
	mu       sync.Mutex
	listings map[string]*models.Listing
	bookings []models.Booking
	queries  int
}

func newMemStore() *memStore {
	return &memStore{listings: map[string]*models.Listing{}}
}

func (m *memStore) addListing(id, status string, maxGuests int) {
	m.listings[id] = &models.Listing{ID: id, Status: status, MaxGuests: maxGuests}
}

func (m *memStore) addBooking(listingID string, in, out time.Time) {
	m.bookings = append(m.bookings, models.Booking{
		ID:           listingID + in.Format("0102"),
		ListingID:    listingID,
		CheckInDate:  in,
		CheckOutDate: out,
		NumGuests:    1,
	})
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) FindOverlapping(_ context.Context, listingID string, iv availability.Interval) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ListingID == listingID && b.CheckInDate.Before(iv.CheckOut) && b.CheckOutDate.After(iv.CheckIn) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) FindOverlappingAny(_ context.Context, iv availability.Interval) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries++
	var out []models.Booking
	for _, b := range m.bookings {
		if b.CheckInDate.Before(iv.CheckOut) && b.CheckOutDate.After(iv.CheckIn) {
			out = append(out, b)
		}
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
