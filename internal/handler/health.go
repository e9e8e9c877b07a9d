package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/metamingle/server/internal/app"
)

// Health reports liveness of the DB and Redis dependencies.
func Health(appCtx *app.AppContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		sqlDB, err := appCtx.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		dbOK := err == nil

		redisOK := appCtx.RedisCache.Ping(ctx) == nil

		status := http.StatusOK
		if !dbOK || !redisOK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"db":    dbOK,
			"redis": redisOK,
		})
	}
}
