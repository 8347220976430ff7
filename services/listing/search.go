package listing

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"

	listingRepo "staybook/database/repository/listing"
	"staybook/models"
	"staybook/services/access"
	"staybook/services/availability"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

var (
	rangeFields    = []string{"price", "maxGuests", "ratingsAverage"}
	rangeOps       = []string{"gte", "gt", "lte", "lt"}
	sortableFields = []string{"price", "ratingsAverage", "createdAt", "title", "maxGuests"}
	selectable     = []string{
		"title", "description", "location", "price", "images", "amenities", "maxGuests",
		"tourType", "status", "host", "ratingsAverage", "ratingsQuantity", "createdAt", "updatedAt",
	}

	// matches keys like price[gte]
	rangeKey = regexp.MustCompile(`^(\w+)\[(\w+)\]$`)
)

// SearchParams is the raw listing query. Unknown or malformed optional
// values fall back to defaults.
type SearchParams struct {
	Status   string
	Location string
	Guests   string
	TourType string
	CheckIn  string
	CheckOut string
	Sort     string
	Fields   string
	Page     string
	Limit    string
	Ranges   []listingRepo.RangeFilter
}

// ParseSearchParams reads a listing search from query parameters.
func ParseSearchParams(q url.Values) SearchParams {
	p := SearchParams{
		Status:   strings.TrimSpace(q.Get("status")),
		Location: strings.TrimSpace(q.Get("location")),
		Guests:   q.Get("guests"),
		TourType: strings.TrimSpace(q.Get("tourType")),
		CheckIn:  q.Get("check_in"),
		CheckOut: q.Get("check_out"),
		Sort:     q.Get("sort"),
		Fields:   q.Get("fields"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		m := rangeKey.FindStringSubmatch(k)
		if m == nil || !slices.Contains(rangeFields, m[1]) || !slices.Contains(rangeOps, m[2]) {
			continue
		}
		v, err := strconv.ParseFloat(q.Get(k), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		p.Ranges = append(p.Ranges, listingRepo.RangeFilter{Field: m[1], Op: m[2], Value: v})
	}
	return p
}

// Search returns one page of listings matching p. When both check_in and
// check_out are given, listings booked in that window are excluded.
func (s *DefaultListingService) Search(ctx context.Context, actor access.Actor, p SearchParams) (*SearchResult, error) {
	status, err := resolveStatus(actor, p.Status)
	if err != nil {
		return nil, err
	}

	c := listingRepo.SearchCriteria{
		Status:   status,
		Location: p.Location,
		TourType: p.TourType,
		Ranges:   p.Ranges,
		Sort:     parseSort(p.Sort),
		Fields:   parseFields(p.Fields),
	}
	if n, err := strconv.Atoi(p.Guests); err == nil && n > 0 {
		c.MinGuests = n
	}

	if p.CheckIn != "" && p.CheckOut != "" {
		excluded, err := s.excluded(ctx, p.CheckIn, p.CheckOut)
		if err != nil {
			return nil, err
		}
		c.ExcludeIDs = excluded.Slice()
	}

	page := positiveOr(p.Page, defaultPage)
	limit := positiveOr(p.Limit, defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	c.Skip = int64((page - 1) * limit)
	c.Limit = int64(limit)

	listings, total, err := s.Repo.Search(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	if err := s.attachHosts(ctx, listings); err != nil {
		return nil, err
	}

	return &SearchResult{
		Listings: listings,
		Pagination: models.Pagination{
			CurrentPage:  page,
			Limit:        limit,
			TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
			TotalResults: total,
		},
	}, nil
}

func (s *DefaultListingService) excluded(ctx context.Context, rawIn, rawOut string) (availability.IDSet, error) {
	in, err := availability.ParseDate(rawIn, s.Location)
	if err != nil {
		return nil, err
	}
	out, err := availability.ParseDate(rawOut, s.Location)
	if err != nil {
		return nil, err
	}
	return s.Filter.ExcludedListings(ctx, in, out)
}

// resolveStatus returns the status filter; "" means any status.
func resolveStatus(actor access.Actor, requested string) (string, error) {
	if !access.Can(actor, access.ModerateListing, "") {
		return models.ListingApproved, nil
	}
	switch {
	case requested == "":
		return models.ListingApproved, nil
	case requested == "all":
		return "", nil
	case slices.Contains(models.ListingStatuses, requested):
		return requested, nil
	default:
		return "", ErrInvalidStatus
	}
}

func parseSort(raw string) []listingRepo.SortField {
	switch raw {
	case "":
		return nil
	case "price_asc":
		return []listingRepo.SortField{{Field: "price"}}
	case "price_desc":
		return []listingRepo.SortField{{Field: "price", Desc: true}}
	}
	var out []listingRepo.SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if slices.Contains(sortableFields, field) {
			out = append(out, listingRepo.SortField{Field: field, Desc: desc})
		}
	}
	return out
}

func parseFields(raw string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if slices.Contains(selectable, f) && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
