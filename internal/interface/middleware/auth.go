package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dforero/ecobarrio-api/pkg/helpers"
	"github.com/dforero/ecobarrio-api/pkg/response"
)

// Auth validates the bearer token in the Authorization header and sets
// userID in the Gin context on success. Tokens are stateless JWTs; no
// server-side session lookup is involved.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set("userID", claims.UserID)
		c.Next()
	}
}
