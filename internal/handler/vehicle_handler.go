package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/motoarena/backend-go/internal/database/models"
	"github.com/motoarena/backend-go/internal/database/service"
	"github.com/motoarena/backend-go/internal/middleware"
)

// VehicleHandler handles HTTP requests for vehicles
type VehicleHandler struct {
	service service.VehicleService
	logger  *slog.Logger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(service service.VehicleService, logger *slog.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		logger:  logger,
	}
}

type CreateVehicleRequest struct {
	Make    string `json:"make" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Year    int    `json:"year" binding:"required,min=1900"`
	Mileage int64  `json:"mileage" binding:"min=0"`
}

// Create registers a vehicle for the authenticated user
func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Make, model, and year required"})
		return
	}

	vehicle := &models.Vehicle{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Mileage: req.Mileage,
	}

	if err := h.service.Create(c.Request.Context(), middleware.UserID(c), vehicle); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// ListMine lists the authenticated user's vehicles
func (h *VehicleHandler) ListMine(c *gin.Context) {
	vehicles, err := h.service.ListOwn(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// Get returns a single vehicle
func (h *VehicleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle id"})
		return
	}

	vehicle, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// Delete removes a vehicle without active listings
func (h *VehicleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id), err
}
