package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taxidesk/pkg/logger"
	"taxidesk/pkg/notify"
	"taxidesk/service"
)

type Server struct {
	svc      service.IServiceManager
	notifier *notify.Notifier
	log      logger.ILogger
}

func NewServer(svc service.IServiceManager, notifier *notify.Notifier, log logger.ILogger) *Server {
	return &Server{svc: svc, notifier: notifier, log: log}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.Use(metricsMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/vehicles", s.handleListVehicles)
		api.GET("/drivers", s.handleListActiveDrivers)
		api.POST("/bookings", s.handleSubmitBooking)
		api.POST("/drivers/agreement", s.handleAcceptAgreement)
		api.POST("/complaints", s.handleFileComplaint)
		api.POST("/login", s.handleLogin)

		admin := api.Group("", s.requireAdmin())
		{
			admin.GET("/bookings", s.handleListBookings)
			admin.GET("/drivers/all", s.handleListAllDrivers)
			admin.GET("/complaints", s.handleListComplaints)
			admin.PUT("/bookings/:id/status", s.handleSetBookingStatus)
			admin.POST("/drivers/:id/toggle-ban", s.handleToggleBan)
		}
	}

	return r
}
