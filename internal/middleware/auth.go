package middleware

import (
	"net/http"
	"strings"

	"tourbook/internal/pkg/jwt"
	"tourbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JWTAuth rejects requests without a valid Bearer token and stores the
// authenticated user_id and role in the request context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtService)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Missing or invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth attaches user_id and role when a valid token is present and
// lets the request through anonymously otherwise. Used for guest bookings.
func OptionalAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, jwtService); ok {
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context, jwtService *jwt.Service) (*jwt.Claims, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tokenStr == "" {
		return nil, false
	}

	claims, err := jwtService.ValidateToken(tokenStr)
	if err != nil {
		return nil, false
	}
	return claims, true
}
