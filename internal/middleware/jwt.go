package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JuanTorresCortes/auth-server/internal/pkg/jwt"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/response"
)

const ContextUserIDKey = "user_id"

// JWTAuth guards protected routes. It requires an "Authorization: Bearer
// <token>" header, verifies the token and exposes the verified user id to
// downstream handlers. Every failure mode is the same 401 to the caller.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}
		claims, err := jwt.ParseToken(parts[1], secret)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, "Error", map[string]string{"user": "Not authorized"})
	c.Abort()
}
