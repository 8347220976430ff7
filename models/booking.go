package models

import "time"

// Booking is a confirmed stay of a user at a listing over [CheckInDate, CheckOutDate).
type Booking struct {
	ID           string    `bson:"id" json:"id"`
	ListingID    string    `bson:"listingId" json:"listingId"`
	UserID       string    `bson:"userId" json:"userId"`
	CheckInDate  time.Time `bson:"checkInDate" json:"checkInDate"`
	CheckOutDate time.Time `bson:"checkOutDate" json:"checkOutDate"`
	NumGuests    int       `bson:"numGuests" json:"numGuests"`
	TotalPrice   float64   `bson:"totalPrice" json:"totalPrice"`
	Paid         bool      `bson:"paid" json:"paid"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
