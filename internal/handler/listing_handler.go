package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/motoarena/backend-go/internal/database/service"
	"github.com/motoarena/backend-go/internal/middleware"
)

// ListingHandler handles HTTP requests for marketplace listings
type ListingHandler struct {
	service service.ListingService
	logger  *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(service service.ListingService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		logger:  logger,
	}
}

type CreateListingRequest struct {
	VehicleID               uint     `json:"vehicle_id" binding:"required"`
	Kind                    string   `json:"kind" binding:"required,oneof=SALE RENT"`
	Title                   string   `json:"title" binding:"required,min=3,max=200"`
	Description             string   `json:"description"`
	Price                   float64  `json:"price" binding:"required,gt=0"`
	Location                string   `json:"location"`
	Features                []string `json:"features"`
	SecurityDeposit         *float64 `json:"security_deposit"`
	MinimumRentalPeriodDays *int     `json:"minimum_rental_period_days"`
}

type UpdateListingRequest struct {
	Title                   *string  `json:"title"`
	Description             *string  `json:"description"`
	Price                   *float64 `json:"price"`
	Location                *string  `json:"location"`
	Features                []string `json:"features"`
	SecurityDeposit         *float64 `json:"security_deposit"`
	MinimumRentalPeriodDays *int     `json:"minimum_rental_period_days"`
}

// Create creates a draft listing
func (h *ListingHandler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid listing request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vehicle id, kind (SALE or RENT), title, and price required"})
		return
	}

	listing, err := h.service.Create(c.Request.Context(), middleware.UserID(c), service.CreateListingInput{
		VehicleID:               req.VehicleID,
		Kind:                    req.Kind,
		Title:                   req.Title,
		Description:             req.Description,
		Price:                   req.Price,
		Location:                req.Location,
		Features:                req.Features,
		SecurityDeposit:         req.SecurityDeposit,
		MinimumRentalPeriodDays: req.MinimumRentalPeriodDays,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// ListPublished lists all published listings
func (h *ListingHandler) ListPublished(c *gin.Context) {
	listings, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// ListMine lists the authenticated user's listings in any state
func (h *ListingHandler) ListMine(c *gin.Context) {
	listings, err := h.service.ListOwn(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// Get returns a single listing
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	listing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Update changes listing fields while the listing is editable
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	listing, err := h.service.Update(c.Request.Context(), id, middleware.UserID(c), service.UpdateListingInput{
		Title:                   req.Title,
		Description:             req.Description,
		Price:                   req.Price,
		Location:                req.Location,
		Features:                req.Features,
		SecurityDeposit:         req.SecurityDeposit,
		MinimumRentalPeriodDays: req.MinimumRentalPeriodDays,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Submit sends the listing to expert review
func (h *ListingHandler) Submit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	listing, err := h.service.SubmitForReview(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Archive moves the listing to its terminal state
func (h *ListingHandler) Archive(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	if err := h.service.Archive(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing archived"})
}

// Delete removes the listing and its review record
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}
