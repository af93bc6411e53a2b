package routes

import (
	"net/http"
	"time"

	"salonassist/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the routes are wired to.
type HandlerBundle struct {
	Chat         *handlers.ChatHandler
	Directory    *handlers.DirectoryHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
}

// RegisterDirectoryRoutes registers the salon reference-data endpoints.
func RegisterDirectoryRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/services", hb.Directory.GetServicesHandler)
	r.GET("/staff", hb.Directory.GetStaffHandler)

	clients := r.Group("/clients")
	{
		clients.GET("/search", hb.Directory.SearchClientsHandler)
		clients.GET("/:clientID", hb.Directory.GetClientHandler)
	}
}

// RegisterBookingRoutes registers availability and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/availability", hb.Availability.GetAvailabilityHandler)
	r.POST("/book_appointment", hb.Booking.BookAppointmentHandler)
	r.GET("/appointments/:clientID", hb.Booking.GetClientAppointmentsHandler)
}

// RegisterChatRoutes registers the conversational endpoint.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/chat", hb.Chat.HandleChatTurn)
}

// RegisterHealthRoutes registers the root and health-check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "API works!"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r)
	RegisterDirectoryRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
}
