package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/JuanTorresCortes/auth-server/internal/middleware"
	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

func handleError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case err == appErr.ErrUnauthorized, err == appErr.ErrForbidden:
		// Ownership failures answer 401 just like missing credentials.
		response.Error(c, http.StatusUnauthorized, "Error", map[string]string{"user": "Not authorized"})
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case appErr.IsConflict(err):
		response.Error(c, http.StatusConflict, "email already in use", nil)
	case err == appErr.ErrInvalid:
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
	default:
		logutil.GetLogger(c.Request.Context()).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("user_id", getUserID(c)),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
