package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotelhub-backend/controllers"
	"hotelhub-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers into the route tree. Role gates live here so
// every group's access level is visible in one place.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	gc *controllers.GuestController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/refresh", ac.Refresh)
			auth.GET("/profile", middleware.RequireAuth(), ac.Profile)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)

			adminRooms := rooms.Group("", middleware.RequireAuth(), middleware.RequireAdmin())
			{
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PATCH("/:id", rc.UpdateRoom)
				adminRooms.PUT("/:id", rc.UpdateRoom)
				adminRooms.PATCH("/:id/availability", rc.UpdateAvailability)
				adminRooms.POST("/:id/images", rc.UploadImages)
				adminRooms.DELETE("/:id", rc.DeleteRoom)
			}
		}

		bookings := api.Group("/bookings", middleware.RequireAuth())
		{
			bookings.POST("", bc.CreateBooking)

			// literal routes before /:id
			bookings.GET("/my-bookings", bc.MyBookings)
			bookings.GET("/stats", middleware.RequireStaff(), bc.Stats)
			bookings.GET("", middleware.RequireStaff(), bc.ListBookings)

			bookings.GET("/:id", bc.GetBooking)
			bookings.PATCH("/:id/cancel", bc.CancelBooking)
			bookings.PATCH("/:id/status", middleware.RequireStaff(), bc.UpdateStatus)
			bookings.DELETE("/:id", middleware.RequireAdmin(), bc.DeleteBooking)
		}

		guests := api.Group("/guests", middleware.RequireAuth())
		{
			guests.GET("/profile", gc.GetProfile)
			guests.POST("/profile", gc.UpsertProfile)

			guests.GET("", middleware.RequireStaff(), gc.ListGuests)
			guests.GET("/:id", middleware.RequireStaff(), gc.GetGuest)
			guests.PUT("/:id", middleware.RequireStaff(), gc.UpdateGuest)
		}
	}

	return r
}
