package listing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"sync"
	"testing"

	"staybook/database/repository"
	listingRepo "staybook/database/repository/listing"
	"staybook/models"
	"staybook/services/availability"
	"staybook/services/storage"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	listings map[string]models.Listing
	lastCrit listingRepo.SearchCriteria
}

func newFakeRepo(ls ...models.Listing) *fakeRepo {
	r := &fakeRepo{listings: map[string]models.Listing{}}
	for _, l := range ls {
		r.listings[l.ID] = l
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id, repository.ErrNotFound)
	}
	return &l, nil
}

func (r *fakeRepo) Create(_ context.Context, l *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID] = *l
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id string, u models.ListingUpdate) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Price != nil {
		l.Price = *u.Price
	}
	if u.MaxGuests != nil {
		l.MaxGuests = *u.MaxGuests
	}
	if u.Images != nil {
		l.Images = *u.Images
	}
	if u.ImagePublicIDs != nil {
		l.ImagePublicIDs = *u.ImagePublicIDs
	}
	r.listings[id] = l
	return &l, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id, status string) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	l.Status = status
	r.listings[id] = l
	return &l, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) (*models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.listings, id)
	return &l, nil
}

// Search applies status and exclusion only; the rest is covered by the
// repository's filter builder.
func (r *fakeRepo) Search(_ context.Context, c listingRepo.SearchCriteria) ([]models.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCrit = c

	excluded := map[string]bool{}
	for _, id := range c.ExcludeIDs {
		excluded[id] = true
	}
	var all []models.Listing
	for _, l := range r.listings {
		if (c.Status == "" || l.Status == c.Status) && !excluded[l.ID] {
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := min(int(c.Skip), len(all))
	end := min(start+int(c.Limit), len(all))
	return all[start:end], total, nil
}

type fakeHosts struct {
	users   map[string]models.User
	queries int
	err     error
}

func (f *fakeHosts) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeBookings struct {
	bookings []models.Booking
	queries  int
}

func (f *fakeBookings) FindOverlapping(_ context.Context, listingID string, iv availability.Interval) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ListingID == listingID && availability.Of(b).Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) FindOverlappingAny(_ context.Context, iv availability.Interval) ([]models.Booking, error) {
	f.queries++
	var out []models.Booking
	for _, b := range f.bookings {
		if availability.Of(b).Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeStorage struct {
	enabled bool
	n       int
}

func (f *fakeStorage) Enabled() bool { return f.enabled }

func (f *fakeStorage) Upload(_ context.Context, r io.Reader, _ storage.ImageKind) (*storage.Asset, error) {
	if !f.enabled {
		return nil, storage.ErrStorageDisabled
	}
	_, _ = io.ReadAll(r)
	f.n++
	id := fmt.Sprintf("img-%d", f.n)
	return &storage.Asset{URL: "https://cdn/" + id, PublicID: id}, nil
}

func (f *fakeStorage) Delete(context.Context, string) error { return nil }

type purgeCall struct {
	taskType string
	payload  models.PurgePayload
}

type fakeEnqueuer struct {
	calls []purgeCall
}

func (f *fakeEnqueuer) EnqueuePurge(_ context.Context, taskType string, p models.PurgePayload) error {
	f.calls = append(f.calls, purgeCall{taskType, p})
	return nil
}

func imageHeaders(t *testing.T, n int) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for i := 0; i < n; i++ {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="p%d.jpg"`, i))
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write([]byte("jpeg"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"]
}
