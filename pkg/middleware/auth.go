package middleware

import (
	"net/http"
	"strings"

	"github.com/waltonseymour/Bazaar/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the session identity from the Authorization header
// and stores it in the gin context as "user_id". Requests without a valid
// session are rejected with an empty 403 body.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
