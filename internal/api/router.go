package api

import (
	"github.com/gin-gonic/gin"

	"github.com/motoarena/backend-go/internal/database/models"
	"github.com/motoarena/backend-go/internal/handler"
	"github.com/motoarena/backend-go/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	vehicleHandler *handler.VehicleHandler,
	listingHandler *handler.ListingHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter gin.HandlerFunc,
	uploadDir string,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Expertise documents
	r.Static("/uploads", uploadDir)

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (Public, rate limited)
	authGroup := r.Group("/api/v1/auth")
	authGroup.Use(authLimiter)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/confirm-email", authHandler.ConfirmEmail)
		authGroup.POST("/resend-confirmation", authHandler.ResendConfirmation)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/validate", authHandler.Validate)
	}

	// Public marketplace browsing
	r.GET("/api/v1/listings", listingHandler.ListPublished)
	r.GET("/api/v1/listings/:id", listingHandler.Get)

	// Protected API routes
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/vehicles", vehicleHandler.Create)
		api.GET("/vehicles", vehicleHandler.ListMine)
		api.GET("/vehicles/:id", vehicleHandler.Get)
		api.DELETE("/vehicles/:id", vehicleHandler.Delete)

		api.POST("/listings", listingHandler.Create)
		api.GET("/listings/mine", listingHandler.ListMine)
		api.PUT("/listings/:id", listingHandler.Update)
		api.DELETE("/listings/:id", listingHandler.Delete)
		api.POST("/listings/:id/submit", listingHandler.Submit)
		api.POST("/listings/:id/archive", listingHandler.Archive)
	}

	// Expert-only review routes
	reviews := r.Group("/api/v1/reviews")
	reviews.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(models.RoleExpert))
	{
		reviews.GET("/queue", reviewHandler.Queue)
		reviews.GET("/stats", reviewHandler.Stats)
		reviews.POST("/:id/approve", reviewHandler.Approve)
		reviews.POST("/:id/reject", reviewHandler.Reject)
		reviews.POST("/:id/document", reviewHandler.UploadDocument)
	}

	return r
}
