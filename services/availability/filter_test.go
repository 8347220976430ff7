package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staybook/services/availability"
)

func TestExcludedListings(t *testing.T) {
	store := newMemStore()
	store.addBooking("L1", day(2024, 7, 1), day(2024, 7, 5))
	store.addBooking("L2", day(2024, 8, 1), day(2024, 8, 5))
	f := availability.NewFilter(store, time.UTC)

	tests := []struct {
		name     string
		in, out  time.Time
		excluded []string
	}{
		{"inside L1", day(2024, 7, 3), day(2024, 7, 4), []string{"L1"}},
		{"touching L1 checkout", day(2024, 7, 5), day(2024, 7, 6), []string{}},
		{"touching L1 checkin", day(2024, 6, 28), day(2024, 7, 1), []string{}},
		{"spanning both", day(2024, 6, 1), day(2024, 9, 1), []string{"L1", "L2"}},
		{"between", day(2024, 7, 10), day(2024, 7, 20), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ExcludedListings(context.Background(), tt.in, tt.out)
			require.NoError(t, err)
			assert.Equal(t, tt.excluded, got.Slice())
		})
	}
}

func TestExcludedListings_PastWindowAllowed(t *testing.T) {
	store := newMemStore()
	store.addBooking("L1", day(2020, 1, 1), day(2020, 1, 3))

	got, err := availability.NewFilter(store, time.UTC).ExcludedListings(context.Background(), day(2020, 1, 2), day(2020, 1, 5))
	require.NoError(t, err)
	assert.True(t, got.Has("L1"))
}

func TestExcludedListings_InvalidWindow(t *testing.T) {
	store := newMemStore()
	f := availability.NewFilter(store, time.UTC)

	_, err := f.ExcludedListings(context.Background(), day(2024, 7, 5), day(2024, 7, 5))
	assert.ErrorIs(t, err, availability.ErrInvalidDateRange)

	_, err = f.ExcludedListings(context.Background(), day(2024, 7, 6), day(2024, 7, 5))
	assert.ErrorIs(t, err, availability.ErrInvalidDateRange)
	assert.Zero(t, store.queries, "invalid windows must not hit the store")
}

func TestExcludedListings_DeduplicatesListings(t *testing.T) {
	store := newMemStore()
	store.addBooking("L1", day(2024, 7, 1), day(2024, 7, 3))
	store.addBooking("L1", day(2024, 7, 3), day(2024, 7, 6))

	got, err := availability.NewFilter(store, time.UTC).ExcludedListings(context.Background(), day(2024, 7, 1), day(2024, 7, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"L1"}, got.Slice())
}
