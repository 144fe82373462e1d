package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/justicechristophersam-ai/spaflow/internal/admin"
	"github.com/justicechristophersam-ai/spaflow/internal/auth"
	"github.com/justicechristophersam-ai/spaflow/internal/booking"
	"github.com/justicechristophersam-ai/spaflow/internal/config"
	"github.com/justicechristophersam-ai/spaflow/internal/history"
	"github.com/justicechristophersam-ai/spaflow/internal/notify"
	"github.com/justicechristophersam-ai/spaflow/internal/realtime"
	"github.com/justicechristophersam-ai/spaflow/internal/schedule"
	"github.com/justicechristophersam-ai/spaflow/internal/whatsapp"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service, hub *realtime.Hub, broker *realtime.Broker) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	bookingRepo := booking.NewRepository(db)
	historyRepo := history.NewRepository(db)
	recorder := history.NewRecorder(historyRepo)

	bookingService := booking.NewService(
		bookingRepo,
		schedule.DefaultHours,
		schedule.SlotOptions{LeadTimeMinutes: cfg.LeadTimeMinutes},
		notifier,
		recorder,
		broker,
	)

	business := whatsapp.Business{
		Name:     cfg.BusinessName,
		Location: cfg.BusinessLocation,
		Phone:    cfg.BusinessPhone,
	}

	bookingHandler := booking.NewHandler(bookingService, recorder, business)
	adminHandler := admin.NewHandler(admin.NewRepository(db), cfg.JWTSecret)
	historyHandler := history.NewHandler(historyRepo)
	streamHandler := realtime.NewHandler(hub)

	public := router.Group("/api")
	{
		public.GET("/services", bookingHandler.ListServices)
		public.GET("/slots", bookingHandler.AvailableSlots)
		public.GET("/booked-slots", bookingHandler.BookedSlots)
		public.GET("/slot-taken", bookingHandler.SlotTaken)
		public.POST("/bookings", RateLimitMiddleware(1, 5), bookingHandler.CreateBooking)
	}

	router.POST("/admin/login", adminHandler.Login)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	adminOnly := auth.RequireRole("admin")
	protected := router.Group("/admin")
	protected.Use(authMiddleware, adminOnly)
	{
		protected.POST("/logout", adminHandler.Logout)
		protected.GET("/me", adminHandler.Me)
		protected.POST("/password", adminHandler.ChangePassword)

		protected.GET("/bookings", bookingHandler.ListBookings)
		protected.GET("/bookings/counts", bookingHandler.BookingCounts)
		protected.PATCH("/bookings/:id/status", bookingHandler.UpdateBookingStatus)
		protected.GET("/bookings/export.csv", bookingHandler.ExportCSV)
		protected.GET("/bookings/:id/whatsapp", bookingHandler.ContactLink)

		protected.GET("/events", historyHandler.ListEvents)
		protected.GET("/stream", streamHandler.Stream)
	}

	registerSystemRoutes(router, notifier)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
