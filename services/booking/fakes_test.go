package booking

import (
	"context"
	"sync"
	"time"

	"staybook/database/repository"
	"staybook/models"
	"staybook/services/availability"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeStore is an in-memory listing + booking repository. When barrier is
// set, FindOverlapping waits at it before answering.
type fakeStore struct {
	mu       sync.Mutex
	listings map[string]*models.Listing
	bookings []models.Booking
	barrier  *barrier

	exclusiveCalls int
}

func newFakeStore(listings ...models.Listing) *fakeStore {
	s := &fakeStore{listings: map[string]*models.Listing{}}
	for i := range listings {
		l := listings[i]
		s.listings[l.ID] = &l
	}
	return s
}

// listingView exposes the store's listings as an availability.ListingLookup.
type listingView struct{ s *fakeStore }

func (v listingView) GetByID(_ context.Context, id string) (*models.Listing, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	l, ok := v.s.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *fakeStore) FindOverlapping(_ context.Context, listingID string, iv availability.Interval) ([]models.Booking, error) {
	s.mu.Lock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.ListingID == listingID && availability.Of(b).Overlaps(iv) {
			out = append(out, b)
		}
	}
	bar := s.barrier
	s.mu.Unlock()

	if bar != nil {
		bar.arrive()
	}
	return out, nil
}

func (s *fakeStore) FindOverlappingAny(_ context.Context, iv availability.Interval) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if availability.Of(b).Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *fakeStore) CreateExclusive(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exclusiveCalls++
	for _, existing := range s.bookings {
		if existing.ListingID == b.ListingID && availability.Of(existing).Overlaps(availability.Of(*b)) {
			return availability.ErrDatesUnavailable
		}
	}
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			cp := s.bookings[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	return s.filter(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (s *fakeStore) ListByListing(_ context.Context, listingID string) ([]models.Booking, error) {
	return s.filter(func(b models.Booking) bool { return b.ListingID == listingID }), nil
}

func (s *fakeStore) ListAll(context.Context) ([]models.Booking, error) {
	return s.filter(func(models.Booking) bool { return true }), nil
}

func (s *fakeStore) filter(keep func(models.Booking) bool) []models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *fakeStore) Delete(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// barrier releases waiters once n have arrived, or after timeout.
type barrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	release chan struct{}
	timeout time.Duration
}

func newBarrier(n int, timeout time.Duration) *barrier {
	return &barrier{n: n, release: make(chan struct{}), timeout: timeout}
}

func (b *barrier) arrive() {
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.n {
		close(b.release)
	}
	b.mu.Unlock()

	select {
	case <-b.release:
	case <-time.After(b.timeout):
	}
}
