package routes

import (
	"github.com/fieldserve/backend/internal/controllers"
	"github.com/fieldserve/backend/internal/middleware"
	"github.com/fieldserve/backend/internal/models"
	"github.com/fieldserve/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom binding rules on gin's validator engine.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("srstatus", func(fl validator.FieldLevel) bool {
			return models.ServiceRequestStatus(fl.Field().String()).Valid()
		})
	}
}

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, requests store.ServiceRequestStore, users store.UserStore) {
	RegisterValidators()

	// Initialize controllers
	authController := controllers.NewAuthController(users)
	serviceRequestController := controllers.NewServiceRequestController(requests)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/signup", authController.Signup)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", authController.GetCurrentUser)

			serviceRequests := protected.Group("/service-requests")
			{
				serviceRequests.POST("", serviceRequestController.CreateServiceRequest)
				serviceRequests.GET("", serviceRequestController.GetServiceRequests)
				serviceRequests.PUT("/:id", serviceRequestController.UpdateServiceRequest)
			}
		}
	}
}
