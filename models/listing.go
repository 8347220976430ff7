package models

import (
	"math"
	"time"
)

// Listing moderation states.
const (
	ListingPending  = "pending"
	ListingApproved = "approved"
	ListingRejected = "rejected"
)

// ListingStatuses lists every valid moderation state.
var ListingStatuses = []string{ListingPending, ListingApproved, ListingRejected}

// TourTypes lists the accepted listing categories.
var TourTypes = []string{"adventure", "cultural", "beach", "city", "nature", "luxury", "other"}

// Listing is a rentable place owned by a host.
type Listing struct {
	ID              string       `bson:"id" json:"id"`
	Title           string       `bson:"title" json:"title"`
	Description     string       `bson:"description" json:"description"`
	Location        string       `bson:"location" json:"location"`
	Price           float64      `bson:"price" json:"price"`
	Images          []string     `bson:"images" json:"images"`
	ImagePublicIDs  []string     `bson:"imagePublicIds,omitempty" json:"-"`
	Amenities       []string     `bson:"amenities" json:"amenities"`
	MaxGuests       int          `bson:"maxGuests" json:"maxGuests"`
	TourType        string       `bson:"tourType" json:"tourType"`
	Status          string       `bson:"status" json:"status"`
	Host            string       `bson:"host" json:"host"`
	HostInfo        *HostSummary `bson:"-" json:"hostInfo,omitempty"`
	RatingsAverage  float64      `bson:"ratingsAverage" json:"ratingsAverage"`
	RatingsQuantity int          `bson:"ratingsQuantity" json:"ratingsQuantity"`
	BookingSeq      int64        `bson:"bookingSeq" json:"-"`
	CreatedAt       time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// IsBookable reports whether guests may book the listing.
func (l *Listing) IsBookable() bool {
	return l.Status == ListingApproved
}

// RoundRating rounds a rating to one decimal place.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// ListingUpdate holds the whitelisted mutable listing fields. Status and host
// are deliberately absent; moderation has its own operation.
type ListingUpdate struct {
	Title          *string   `json:"title" form:"title"`
	Description    *string   `json:"description" form:"description"`
	Location       *string   `json:"location" form:"location"`
	Price          *float64  `json:"price" form:"price"`
	Amenities      *[]string `json:"amenities" form:"amenities"`
	MaxGuests      *int      `json:"maxGuests" form:"maxGuests"`
	TourType       *string   `json:"tourType" form:"tourType"`
	Images         *[]string `json:"-" form:"-"`
	ImagePublicIDs *[]string `json:"-" form:"-"`
}
