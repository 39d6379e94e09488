package routes

import (
	"net/http"
	"time"

	"festivo/handlers"
	"festivo/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterHandler)
		api.POST("/login", hb.Users.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.Users.GetProfileHandler)
	}
}

// RegisterCatalogRoutes registers vendor listing endpoints. Reads are public;
// mutations require a vendor token.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Catalog.ListServicesHandler)
		api.GET("/:id", hb.Catalog.GetServiceHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.GET("/mine", hb.Catalog.ListVendorServicesHandler)
		protected.POST("", hb.Catalog.CreateServiceHandler)
		protected.PUT("/:id", hb.Catalog.UpdateServiceHandler)
		protected.DELETE("/:id", hb.Catalog.DeleteServiceHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		// Availability checks are public so listings can show open slots
		// before sign-in.
		bookingGroup.POST("/check", hb.Bookings.CheckAvailabilityHandler)
	}

	cartGroup := r.Group("/api/cart")
	{
		cartGroup.Use(middleware.JWTAuthMiddleware())
		cartGroup.GET("", hb.Bookings.GetCartHandler)
		cartGroup.POST("/add", hb.Bookings.AddToCartHandler)
		cartGroup.DELETE("/remove", hb.Bookings.RemoveFromCartHandler)
		cartGroup.DELETE("/clear", hb.Bookings.ClearCartHandler)
		cartGroup.POST("/checkout", hb.Bookings.CheckoutHandler)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware())
		bookings.GET("", hb.Bookings.ListBookingsHandler)
		bookings.DELETE("/:id", hb.Bookings.CancelBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Festivo"})
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
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterUserRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
