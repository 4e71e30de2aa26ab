package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/internal/utils"
)

// SessionMiddleware resolves the caller's shopping session. A valid Bearer
// token identifies the account; without one the caller shops as a guest.
// Every caller gets a cart key: the X-Cart-Key header when the client sends
// one, a fresh key otherwise. The key is echoed back so clients can persist
// it across requests.
func SessionMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
				c.Abort()
				return
			}
			claims, err := utils.ValidateSessionToken(parts[1], jwtSecret)
			if err != nil {
				utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
				c.Abort()
				return
			}
			c.Set("account_id", claims.AccountID)
			c.Set("email", claims.Email)
		}

		cartKey := strings.TrimSpace(c.GetHeader("X-Cart-Key"))
		if cartKey == "" {
			cartKey = uuid.New().String()
		}
		c.Set("cart_key", cartKey)
		c.Header("X-Cart-Key", cartKey)

		c.Next()
	}
}

// RequireAccount rejects guests. Runs after SessionMiddleware.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("account_id"); !ok {
			utils.Error(c, 401, "UNAUTHORIZED", "Sign in required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetSession assembles the service session from the gin context.
func GetSession(c *gin.Context) service.Session {
	sess := service.Session{CartKey: c.GetString("cart_key")}
	if id, ok := c.Get("account_id"); ok {
		if accountID, ok := id.(int); ok {
			sess.AccountID = &accountID
		}
	}
	return sess
}
