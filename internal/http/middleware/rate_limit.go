package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/localhire/internal/dto"
	"github.com/ignatzorin/localhire/internal/logger"
)

// RateLimitMiddleware ограничивает число отправок формы с одного IP.
// Лимит считается отдельно для каждого маршрута.
// По умолчанию: 10 запросов в минуту.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = 1 * time.Minute
	}

	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}
	instance := limiter.New(memory.NewStore(), rate)
	log := logger.Component("rate_limit")

	return func(c *gin.Context) {
		key := c.ClientIP() + "|" + c.FullPath()
		lctx, err := instance.Get(c, key)
		if err != nil {
			log.WithError(err).Error("limiter store failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}
