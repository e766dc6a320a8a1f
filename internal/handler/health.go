package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB, Redis and the storage circuit breaker; never exposes credentials
// or internals.
func Health(db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		storageStatus := "unconfigured"
		if cb != nil {
			switch cb.State() {
			case infra.CBOpen:
				storageStatus = "circuit_open"
			case infra.CBHalfOpen:
				storageStatus = "recovering"
			default:
				storageStatus = "connected"
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"db":      dbStatus,
			"redis":   redisStatus,
			"storage": storageStatus,
		})
	}
}
