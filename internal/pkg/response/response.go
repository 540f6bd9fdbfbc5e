package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes the uniform envelope with success=true, merging any extra
// top-level keys (data, token, email) from payload.
func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error writes the uniform failure envelope. fields carries per-field
// validation detail and may be nil.
func Error(c *gin.Context, status int, message string, fields map[string]string) {
	body := gin.H{"success": false, "message": message}
	if len(fields) > 0 {
		body["error"] = fields
	}
	c.JSON(status, body)
}
