package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/motoarena/backend-go/internal/database/service"
	"github.com/motoarena/backend-go/internal/middleware"
	"github.com/motoarena/backend-go/internal/storage"
)

// ReviewHandler handles HTTP requests for expert reviews
type ReviewHandler struct {
	service service.ListingService
	storage storage.Storage
	logger  *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service service.ListingService, store storage.Storage, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		storage: store,
		logger:  logger,
	}
}

type RejectRequest struct {
	Reason   *string `json:"reason"`
	Feedback *string `json:"feedback"`
}

// Queue lists listings waiting for review
func (h *ReviewHandler) Queue(c *gin.Context) {
	listings, err := h.service.ListPendingReview(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// Stats reports review counts per decision state
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.service.ReviewStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": stats})
}

// Approve publishes the reviewed listing
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expertise id"})
		return
	}

	if err := h.service.Approve(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing approved and published"})
}

// Reject declines the reviewed listing with optional reason and feedback
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expertise id"})
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.Reject(c.Request.Context(), id, middleware.UserID(c), req.Reason, req.Feedback); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing rejected"})
}

// UploadDocument attaches an expertise report to the review
func (h *ReviewHandler) UploadDocument(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expertise id"})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.storage.Save(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch err {
		case storage.ErrFileTooLarge:
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case storage.ErrUnsupportedFileType:
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		default:
			h.logger.Error("❌ [Handler] Failed to store document", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		}
		return
	}

	if err := h.service.AttachReviewDocument(c.Request.Context(), id, middleware.UserID(c), url); err != nil {
		// Orphaned file cleanup; the review record was not updated.
		if delErr := h.storage.Delete(c.Request.Context(), url); delErr != nil {
			h.logger.Warn("⚠️ [Handler] Failed to remove orphaned document", "error", delErr)
		}
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document_url": url})
}
