package http

import (
	"net/http"
	"strings"
	"time"

	intconfig "boardinghouse-backend/internal/config"
	"boardinghouse-backend/internal/gateway"
	"boardinghouse-backend/internal/http/handlers"
	"boardinghouse-backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes for the API. The Stripe gateway is
// injected through handlers.Init so tests can swap in a fake.
func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(env)))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	handlers.Init(env, gateway.NewStripeGateway(env.StripeSecretKey))

	r.Static("/uploads", env.UploadDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.GET("/db-check", handlers.DBCheck)

		api.POST("/auth/register", handlers.Register)
		api.POST("/auth/login", handlers.Login)

		api.GET("/rooms", handlers.ListRooms)
		api.GET("/rooms/:id", handlers.GetRoom)

		api.POST("/create-payment-intent", handlers.CreatePaymentIntent)
		api.GET("/payments/config", handlers.PaymentsConfig)
	}

	auth := api.Group("")
	auth.Use(middleware.Authenticate(env.JWTSecret))
	{
		auth.POST("/bookings", handlers.CreateBooking)
		auth.GET("/bookings", handlers.ListMyBookings)
		auth.POST("/bookings/:id/cancel", handlers.CancelBooking)

		auth.GET("/payment-success/:id", handlers.ConfirmPayment)
		auth.POST("/bookings/:id/confirm-payment", handlers.ConfirmPayment)

		auth.GET("/me/profile", handlers.GetMyProfile)
		auth.PUT("/me/profile", handlers.UpdateMyProfile)
		auth.POST("/me/avatar", handlers.UploadAvatar)
		auth.GET("/me/payments", handlers.MyPayments)
		auth.GET("/me/tenancies", handlers.MyTenancies)

		auth.GET("/notifications", handlers.ListNotifications)
		auth.PUT("/notifications/read-all", handlers.MarkAllNotificationsRead)
		auth.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
		auth.DELETE("/notifications/:id", handlers.DeleteNotification)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Authenticate(env.JWTSecret), middleware.RequireRole("admin"))
	{
		admin.POST("/rooms", handlers.CreateRoom)
		admin.PUT("/rooms/:id", handlers.UpdateRoom)
		admin.DELETE("/rooms/:id", handlers.DeleteRoom)
		admin.POST("/rooms/images", handlers.UploadRoomImages)

		admin.GET("/bookings", handlers.ListBookingsForAdmin)
		admin.PUT("/bookings/:id/decision", handlers.DecideBooking)

		admin.GET("/tenants", handlers.ListTenants)
		admin.POST("/tenants/:id/remove", handlers.RemoveTenant)
		admin.POST("/tenants/:id/reminder", handlers.SendReminder)

		admin.GET("/payments", handlers.ListPayments)
		admin.PUT("/payments/:id/status", handlers.UpdatePaymentStatus)
		admin.POST("/payments", handlers.CreateManualPayment)
		admin.GET("/payments/:id/receipt", handlers.PaymentReceipt)

		admin.GET("/dashboard", handlers.DashboardStats)
	}

	return r
}

func corsConfig(env intconfig.Env) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	var origins []string
	for _, o := range strings.Split(env.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
