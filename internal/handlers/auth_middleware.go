package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/workshopwise/marketplace-service/internal/models"
	"github.com/workshopwise/marketplace-service/internal/security"
)

// JWTAuthMiddleware validates bearer tokens and exposes the session identity
// to downstream handlers via the gin context.
type JWTAuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewJWTAuthMiddleware(tokenManager security.TokenManager) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokenManager: tokenManager}
}

// AuthMiddleware requires a valid bearer token
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header required",
			})
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Bearer token required",
			})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			message := "Invalid token"
			if err == security.ErrExpiredToken {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: message,
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRoleMiddleware restricts a route to the listed roles. Must run after
// AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		role, ok := value.(models.UserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
		})
	}
}
