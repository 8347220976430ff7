package routes

import (
	"fmt"
	"net/http"
	"time"

	"staybook/handlers"
	"staybook/middleware"
	"staybook/models"
	"staybook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers endpoints that do not require a token.
// Listing reads attach the caller when a valid token is present.
func RegisterPublicRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	optional := middleware.IsLoggedIn(hb.UserRepo, hb.AuthCache)

	api.POST("/register", hb.Auth.Register)
	api.POST("/login", hb.Auth.Login)
	api.GET("/logout", hb.Auth.Logout)
	api.GET("/listings", optional, hb.Listings.Search)
	api.GET("/listings/:id", optional, hb.Listings.Get)
	api.GET("/bookings/listing/:listingId", optional, hb.Bookings.ForListing)
}

// RegisterUserRoutes registers endpoints for any authenticated user.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	protected := api.Group("")
	protected.Use(middleware.Protect(hb.UserRepo, hb.AuthCache))
	{
		protected.GET("/users/me", hb.Users.GetMe)
		protected.PATCH("/users/updateMe", hb.Users.UpdateMe)
		protected.GET("/bookings/myBookings", hb.Bookings.MyBookings)
		protected.POST("/bookings", hb.Bookings.Create)

		hosts := protected.Group("")
		hosts.Use(middleware.RestrictTo(models.RoleHost, models.RoleAdmin))
		hosts.POST("/listings", hb.Listings.Create)
		hosts.PATCH("/listings/:id", hb.Listings.Update)
		hosts.DELETE("/listings/:id", hb.Listings.Delete)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := api.Group("/admin")
	admin.Use(middleware.Protect(hb.UserRepo, hb.AuthCache), middleware.RestrictTo(models.RoleAdmin))
	{
		admin.GET("/listings", hb.Listings.Search)
		admin.POST("/listings", hb.Listings.Create)
		admin.PATCH("/listings/:id", hb.Listings.Update)
		admin.DELETE("/listings/:id", hb.Listings.Delete)
		admin.PATCH("/listings/:id/status", hb.Listings.UpdateStatus)

		admin.GET("/users", hb.Users.ListUsers)
		admin.GET("/users/:id", hb.Users.GetUser)
		admin.PATCH("/users/:id", hb.Users.UpdateUser)
		admin.DELETE("/users/:id", hb.Users.DeleteUser)

		admin.GET("/bookings", hb.Bookings.ListAll)
		admin.GET("/bookings/:id", hb.Bookings.Get)
		admin.DELETE("/bookings/:id", hb.Bookings.Delete)
	}
}

// RegisterHealthRoute reports the last dependency probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "message": "Hi, I'm staybook", "dependencies": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.LimitJSONBody(middleware.JSONBodyLimit))

	api := r.Group("/api/v1")
	RegisterPublicRoutes(api, hb)
	RegisterUserRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
	RegisterHealthRoute(r)

	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path), "")
	})
}
