package availability

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// IDSet is a set of listing ids.
type IDSet map[string]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the ids in ascending order.
func (s IDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Filter computes which listings are booked somewhere inside a search window.
type Filter struct {
	Bookings BookingFinder
	Location *time.Location
}

// NewFilter wires a Filter.
func NewFilter(bookings BookingFinder, loc *time.Location) *Filter {
	return &Filter{Bookings: bookings, Location: loc}
}

// ExcludedListings returns the ids of listings having at least one booking
// overlapping [checkIn, checkOut). Past windows are allowed.
func (f *Filter) ExcludedListings(ctx context.Context, checkIn, checkOut time.Time) (IDSet, error) {
	iv, err := NewInterval(checkIn, checkOut, f.Location)
	if err != nil {
		return nil, err
	}
	bookings, err := f.Bookings.FindOverlappingAny(ctx, iv)
	if err != nil {
		return nil, fmt.Errorf("availability: find overlapping bookings: %w", err)
	}
	excluded := IDSet{}
	for _, b := range bookings {
		if iv.Overlaps(Of(b)) {
			excluded[b.ListingID] = struct{}{}
		}
	}
	return excluded, nil
}
