package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/sangkips/salesdoc-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/dto/response"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The business in
// the token scopes every repository call of the request.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("user_roles", claims.Roles)
		c.Set("business_id", claims.BusinessID)

		ctx := infraRepo.WithBusiness(c.Request.Context(), claims.BusinessID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetBusinessID returns the business set by AuthMiddleware
func GetBusinessID(c *gin.Context) uuid.UUID {
	v, exists := c.Get("business_id")
	if !exists {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, _ := c.Get("user_roles")
		userRolesList, _ := userRoles.([]string)

		for _, userRole := range userRolesList {
			for _, requiredRole := range roles {
				if userRole == requiredRole {
					c.Next()
					return
				}
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
