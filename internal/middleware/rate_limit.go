package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"zayna_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint public
	OrderMaxPerMinute   = 5
	ContactMaxPerMinute = 3

	rateWindow = 1 * time.Minute
)

// OrderRateLimit limite les soumissions de commandes par IP. Sans clé
// d'idempotence côté client, c'est le seul garde-fou contre les doubles
// soumissions en rafale. No-op si Redis n'est pas configuré.
func OrderRateLimit() gin.HandlerFunc {
	return ipRateLimit("order_submit:", OrderMaxPerMinute)
}

// ContactRateLimit limite les envois du formulaire de contact par IP.
func ContactRateLimit() gin.HandlerFunc {
	return ipRateLimit("contact_submit:", ContactMaxPerMinute)
}

func ipRateLimit(prefix string, max int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := prefix + c.ClientIP()

		requests, _ := database.Redis.Get(ctx, key).Int()
		if requests >= max {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes. Réessayez dans 1 minute",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		pipe := database.Redis.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, rateWindow)
		pipe.Exec(ctx)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", max-requests-1))

		c.Next()
	}
}
