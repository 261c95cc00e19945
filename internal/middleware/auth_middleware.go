package middleware

import (
	"net/http"
	"strings"

	"farmstock_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and stores the claims on the
// request context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, http.StatusUnauthorized, utils.APIError{
				Code: utils.ErrCodeUnauthorized, Message: "Authorization header required",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.RespondWithError(c, http.StatusUnauthorized, utils.APIError{
				Code: utils.ErrCodeUnauthorized, Message: "Authorization header must be in 'Bearer <token>' format",
			})
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, utils.APIError{
				Code: utils.ErrCodeUnauthorized, Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RoleAuthMiddleware allows only users whose role is in the allowed set.
// Must run after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, http.StatusForbidden, utils.APIError{
			Code: utils.ErrCodeForbidden, Message: "Insufficient permissions",
		})
	}
}
