// Package routes assembles the gin engine: middleware stack, CORS and the issue API.
package routes

import (
	"net/http"
	"time"

	"civiclens/config"
	"civiclens/controllers"
	"civiclens/middlewares"
	"civiclens/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// NewRouter wires the middleware and routes. redisClient may be nil, which turns the
// submission rate limit off.
func NewRouter(cfg *config.Config, service *services.IssueService, redisClient *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if err := controllers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	limiter := middlewares.IssueRateLimiter(redisClient, cfg.IssueLimitPrefix, cfg.IssueLimitPerDay, logger)
	IssueRoutes(r, controllers.NewIssueController(service, logger), limiter)

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
