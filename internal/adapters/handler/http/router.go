package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bossygit/vibes-arc-sub000/internal/adapters/handler/http/middleware"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RateLimit struct {
	Requests int
	Window   time.Duration
}

type RouterDependencies struct {
	HabitHandler    *HabitHandler
	IdentityHandler *IdentityHandler
	ReportHandler   *ReportHandler
	// DB is nil with in-memory storage.
	DB        Pinger
	Redis     *redis.Client
	RateLimit RateLimit
	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.CORS())

	if deps.Redis != nil && deps.RateLimit.Requests > 0 {
		router.Use(middleware.RateLimiter(deps.Redis, deps.RateLimit.Requests, deps.RateLimit.Window))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := "disabled"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")
	deps.HabitHandler.RegisterRoutes(apiV1)
	deps.IdentityHandler.RegisterRoutes(apiV1)
	deps.ReportHandler.RegisterRoutes(apiV1)

	return router
}
