package handlers

import (
	"net/http"
	"time"

	"staybook/middleware"
	"staybook/services/availability"
	"staybook/services/booking"
	"staybook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves booking endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
	// Location is the zone calendar dates are interpreted in.
	Location *time.Location
}

func NewBookingHandler(bookings booking.BookingService, loc *time.Location) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Location: loc}
}

type createBookingRequest struct {
	ListingID    string  `json:"listingId" binding:"required"`
	CheckInDate  string  `json:"checkInDate" binding:"required"`
	CheckOutDate string  `json:"checkOutDate" binding:"required"`
	NumGuests    int     `json:"numGuests" binding:"required,min=1"`
	TotalPrice   float64 `json:"totalPrice" binding:"min=0"`
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	checkIn, err := availability.ParseDate(req.CheckInDate, h.Location)
	if err != nil {
		respondError(c, err, msgNotFound)
		return
	}
	checkOut, err := availability.ParseDate(req.CheckOutDate, h.Location)
	if err != nil {
		respondError(c, err, msgNotFound)
		return
	}

	b, err := h.Bookings.Create(c.Request.Context(), middleware.CurrentActor(c), booking.CreateRequest{
		ListingID:  req.ListingID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		NumGuests:  req.NumGuests,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		respondError(c, err, msgListingNotBook)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, msgBookingCreated, gin.H{"booking": b})
}

// MyBookings handles GET /bookings/myBookings.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListMine(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err, msgNotFound)
		return
	}
	utils.JSONList(c, "bookings", bookings, nil)
}

// ForListing handles GET /bookings/listing/:listingId.
func (h *BookingHandler) ForListing(c *gin.Context) {
	bookings, err := h.Bookings.ListForListing(c.Request.Context(), middleware.CurrentActor(c), c.Param("listingId"))
	if err != nil {
		respondError(c, err, msgNotFound)
		return
	}
	utils.JSONList(c, "bookings", bookings, nil)
}

func (h *BookingHandler) ListAll(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err, msgNotFound)
		return
	}
	utils.JSONList(c, "bookings", bookings, nil)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgNotFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"booking": b})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.Bookings.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondError(c, err, msgNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
