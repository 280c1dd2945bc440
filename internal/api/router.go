package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"console-rental-backend/config"
	"console-rental-backend/internal/mw"
	"console-rental-backend/internal/notification"
	"console-rental-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	db := s.DB()
	handler := NewHandler(s, webpushOptions, pool)

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	r.Use(cors.New(corsConfig))

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/snapshot", handler.GetSnapshot)

		api.GET("/devices", GetDevices(db))
		api.POST("/devices", handler.PostDevice)
		api.PATCH("/devices/:device_id", handler.PatchDevice)
		api.DELETE("/devices/:device_id", handler.DeleteDevice)

		api.POST("/devices/:device_id/sessions", handler.StartSession)
		api.POST("/devices/:device_id/sessions/end", handler.EndSession)
		api.GET("/sessions", GetSessions(db))
		api.PATCH("/sessions/:session_id", handler.PatchSession)

		api.POST("/maintenance", handler.PostMaintenance)

		// Reports are expensive to list; cache the read side only.
		api.GET("/reports", caching, GetReports(db))
		api.POST("/reports/daily", handler.GenerateDailyReport)

		api.GET("/customers", GetCustomers(db))
		api.POST("/customers", handler.PostCustomer)
		api.PATCH("/customers/:customer_id", handler.PatchCustomer)
		api.POST("/customers/:customer_id/balance", handler.AdjustCustomerBalance)

		api.GET("/reservations", GetReservations(db))
		api.POST("/reservations", handler.PostReservation)
		api.PATCH("/reservations/:reservation_id", handler.PatchReservation)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		api.POST("/reset", handler.Reset)
	}

	return r
}
