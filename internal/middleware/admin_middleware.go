package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/beautyhub/shop_api/internal/utils"
)

// AdminMiddleware guards the back-office routes with a static API key.
// Invalid attempts are rate limited per IP so the key cannot be brute
// forced from outside.
type AdminMiddleware struct {
	adminKey    string
	rateLimiter *InvalidAuthRateLimiter
}

// NewAdminMiddleware constructs an AdminMiddleware.
func NewAdminMiddleware(adminKey string) *AdminMiddleware {
	return &AdminMiddleware{
		adminKey:    adminKey,
		rateLimiter: NewInvalidAuthRateLimiter(),
	}
}

// Handle returns a Gin middleware that enforces the admin key.
func (m *AdminMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.adminKey == "" {
			utils.Error(c, 503, "ADMIN_DISABLED", "Admin API is not configured")
			c.Abort()
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.adminKey)) != 1 {
			ip := c.ClientIP()
			if !m.rateLimiter.Allow(ip) {
				log.Warn().Str("ip", ip).Msg("rate limited invalid admin key attempts")
				utils.Error(c, 429, "RATE_LIMITED", "Too many invalid attempts")
				c.Abort()
				return
			}
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid admin key")
			c.Abort()
			return
		}

		c.Next()
	}
}
