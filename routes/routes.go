package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-core/controllers"
	"hotel-core/middleware"
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

// SetupRouter wires controllers onto the /api surface. Everything under
// /api requires a resolved tenant.
func SetupRouter(
	log *zap.Logger,
	rc *controllers.RoomController,
	tc *controllers.RoomTypeController,
	bc *controllers.BookingController,
	hc *controllers.HousekeepingController,
	ic *controllers.InventoryController,
	pc *controllers.ReportController,
	cc *controllers.CustomerController,
	ac *controllers.AgentController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Tenant-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.TenantRequired(jwtSecret))
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id/status", rc.UpdateRoomStatus)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", tc.GetRoomTypes)
			roomTypes.POST("", tc.CreateRoomType)
			roomTypes.DELETE("/:id", tc.DeleteRoomType)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/number/:number", bc.GetByNumber)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("/:id/check-in", bc.CheckIn)
			bookings.POST("/:id/check-out", bc.CheckOut)
			bookings.POST("/:id/cancel", bc.Cancel)
			bookings.POST("/:id/no-show", bc.NoShow)
			bookings.PATCH("/:id/payment", bc.UpdatePayment)
		}

		housekeeping := api.Group("/housekeeping")
		{
			housekeeping.GET("", hc.GetTasks)
			housekeeping.POST("", hc.CreateTask)
			housekeeping.PATCH("/:id/status", hc.UpdateStatus)
		}

		inventory := api.Group("/inventory")
		{
			inventory.GET("", ic.GetItems)
			inventory.POST("", ic.CreateItem)
			inventory.GET("/:id", ic.GetItem)
			inventory.PATCH("/:id", ic.UpdateItem)
			inventory.DELETE("/:id", ic.DeleteItem)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/summary", pc.GetSummary)
			reports.GET("/trends", pc.GetTrends)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", cc.GetCustomers)
			customers.POST("", cc.CreateCustomer)
			customers.GET("/:id", cc.GetCustomer)
			customers.PATCH("/:id", cc.UpdateCustomer)
			customers.DELETE("/:id", cc.DeleteCustomer)
		}

		agents := api.Group("/agents")
		{
			agents.GET("", ac.GetAgents)
			agents.POST("", ac.CreateAgent)
			agents.PATCH("/:id", ac.UpdateAgent)
		}
	}

	return r
}
