package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"staybook/database/repository"
	"staybook/services/access"
	"staybook/services/availability"
	"staybook/services/booking"
	"staybook/services/listing"
	"staybook/services/storage"
	"staybook/services/user"
	"staybook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgNotFound        = "Not Found"
	msgNoListingFound  = "No listing found with that ID"
	msgNoUserFound     = "No user found with that ID"
	msgListingNotBook  = "Listing not found or not available for booking."
	msgInvalidDates    = "Invalid booking dates. Check-out must be after check-in, and dates cannot be in the past."
	msgGuestsExceedMax = "Number of guests exceeds maximum allowed for this listing (%d)."
	msgListingUnavail  = "The listing is not available for the requested dates."
	msgBookingCreated  = "Booking created successfully!"
	msgEmailTaken      = "Email already registered"
	msgInvalidCreds    = "Invalid email or password"
	msgPasswordUpdate  = "This route is not for password updates. Please use /updateMyPassword."
	msgInvalidStatus   = "Invalid status provided. Must be pending, approved, or rejected."
	msgFileType        = "Unsupported file type. Only image uploads are allowed."
	msgUploadsDisabled = "Image uploads are not configured on this server."
	msgServerError     = "Something went very wrong!"
)

// respondError maps service errors to HTTP responses. notFound is the message
// used when the requested resource does not exist.
func respondError(c *gin.Context, err error, notFound string) {
	var guests *availability.GuestsExceedMaxError

	switch {
	case errors.Is(err, availability.ErrListingNotFound), errors.Is(err, availability.ErrListingUnavailable):
		utils.JSONError(c, http.StatusNotFound, msgListingNotBook, "")
	case errors.Is(err, availability.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, msgInvalidDates, "")
	case errors.As(err, &guests):
		utils.JSONError(c, http.StatusBadRequest, fmt.Sprintf(msgGuestsExceedMax, guests.MaxGuests), "")
	case errors.Is(err, availability.ErrDatesUnavailable):
		utils.JSONError(c, http.StatusBadRequest, msgListingUnavail, "")
	case errors.Is(err, booking.ErrBookingBusy):
		utils.JSONError(c, http.StatusConflict, booking.ErrBookingBusy.Error(), "")

	case errors.Is(err, access.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, access.ErrForbidden.Error(), "")
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, notFound, "")

	case errors.Is(err, user.ErrEmailTaken), errors.Is(err, repository.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, msgEmailTaken, "")
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, msgInvalidCreds, "")
	case errors.Is(err, user.ErrPasswordUpdate):
		utils.JSONError(c, http.StatusBadRequest, msgPasswordUpdate, "")
	case errors.Is(err, listing.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, msgInvalidStatus, "")
	case errors.Is(err, listing.ErrInvalidInput), errors.Is(err, user.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "Validation Error", err.Error())

	case errors.Is(err, storage.ErrNotAnImage):
		utils.JSONError(c, http.StatusBadRequest, msgFileType, "")
	case errors.Is(err, storage.ErrImageTooLarge), errors.Is(err, storage.ErrTooManyImages):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, storage.ErrStorageDisabled):
		utils.JSONError(c, http.StatusServiceUnavailable, msgUploadsDisabled, "")

	default:
		utils.GetLogger().Error("Unhandled request error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, msgServerError, "")
	}
}

// badRequest reports a binding failure.
func badRequest(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, "Request body too large", "")
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "Bad Request", err.Error())
}
