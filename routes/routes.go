package routes

import (
	"net/http"
	"time"

	"glowtheory/handlers"
	"glowtheory/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterOtpRoutes registers phone verification endpoints.
func RegisterOtpRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/otp")
	{
		api.POST("/send", hb.SendOTPHandler)
		api.POST("/verify", hb.VerifyOTPHandler)
	}
}

// RegisterSmsRoutes registers the confirmation message endpoint.
func RegisterSmsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sms")
	{
		api.POST("/confirmation", hb.ConfirmationHandler)
	}
}

// RegisterCatalogRoutes registers catalog read endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.ListServicesHandler)
		api.GET("/:id/stylists", hb.ListServiceStylistsHandler)
	}
}

// RegisterAvailabilityRoutes registers the slot computation endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/availability", hb.GetSlotsHandler)
}

// RegisterCartRoutes registers cart assembly and checkout endpoints.
// Checkout requires the bearer token minted by OTP verification.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.POST("", hb.CreateCartHandler)
		api.GET("/:id", hb.GetCartHandler)
		api.POST("/:id/items", hb.AddCartItemHandler)
		api.DELETE("/:id/items/:itemId", hb.RemoveCartItemHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/:id/checkout", hb.CheckoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Glow Theory"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterOtpRoutes(r, hb)
	RegisterSmsRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterHealthRoute(r)
}
