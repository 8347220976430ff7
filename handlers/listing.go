package handlers

import (
	"net/http"

	"staybook/middleware"
	"staybook/models"
	"staybook/services/listing"
	"staybook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListingHandler serves listing search, detail and management endpoints.
type ListingHandler struct {
	Listings listing.ListingService
}

func NewListingHandler(listings listing.ListingService) *ListingHandler {
	return &ListingHandler{Listings: listings}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Search handles GET /listings. Supports the check_in/check_out availability window.
func (h *ListingHandler) Search(c *gin.Context) {
	params := listing.ParseSearchParams(c.Request.URL.Query())
	res, err := h.Listings.Search(c.Request.Context(), middleware.CurrentActor(c), params)
	if err != nil {
		respondError(c, err, msgNoListingFound)
		return
	}
	utils.JSONList(c, "listings", res.Listings, &res.Pagination)
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.Listings.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err, msgNoListingFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"listing": l})
}

// Create handles POST /listings as JSON or multipart with up to five "images".
func (h *ListingHandler) Create(c *gin.Context) {
	var in listing.CreateInput
	if err := c.ShouldBind(&in); err != nil {
		badRequest(c, err)
		return
	}
	images, err := formFiles(c, "images")
	if err != nil {
		badRequest(c, err)
		return
	}
	l, err := h.Listings.Create(c.Request.Context(), middleware.CurrentActor(c), in, images)
	if err != nil {
		respondError(c, err, msgNoListingFound)
		return
	}
	getLogger(c).Info("Listing created", zap.String("listingId", l.ID))
	utils.JSONSuccess(c, http.StatusCreated, "Resource created successfully", gin.H{"listing": l})
}

func (h *ListingHandler) Update(c *gin.Context) {
	var patch models.ListingUpdate
	if err := c.ShouldBind(&patch); err != nil {
		badRequest(c, err)
		return
	}
	images, err := formFiles(c, "images")
	if err != nil {
		badRequest(c, err)
		return
	}
	l, err := h.Listings.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), patch, images)
	if err != nil {
		respondError(c, err, msgNoListingFound)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"listing": l})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	if err := h.Listings.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		respondError(c, err, msgNoListingFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus handles PATCH /admin/listings/:id/status.
func (h *ListingHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, msgInvalidStatus, "")
		return
	}
	l, err := h.Listings.UpdateStatus(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, msgNoListingFound)
		return
	}
	getLogger(c).Info("Listing moderated", zap.String("listingId", l.ID), zap.String("status", l.Status))
	utils.JSONSuccess(c, http.StatusOK, utils.MsgSuccess, gin.H{"listing": l})
}
