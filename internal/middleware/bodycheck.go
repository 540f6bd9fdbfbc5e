package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JuanTorresCortes/auth-server/internal/pkg/response"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/validate"
)

// CheckEmptyFields rejects any request whose JSON body carries a
// string-valued field set to the empty string. Absent fields pass. The body
// is restored so handlers can bind it again.
func CheckEmptyFields() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := readBody(c)
		if !ok {
			return
		}
		if errObj := validate.EmptyFields(body); len(errObj) > 0 {
			response.Error(c, http.StatusInternalServerError, "Error", errObj)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ValidateCredentials enforces email syntax and password strength on
// registration and login bodies. The email is normalized (lowercased,
// trimmed) before the format check, matching how it is stored.
func ValidateCredentials() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := readBody(c)
		if !ok {
			return
		}
		email, _ := body["email"].(string)
		email = strings.ToLower(strings.TrimSpace(email))
		password, _ := body["password"].(string)
		if errObj := validate.Credentials(email, password); len(errObj) > 0 {
			response.Error(c, http.StatusUnauthorized, "Error", errObj)
			c.Abort()
			return
		}
		c.Next()
	}
}

func readBody(c *gin.Context) (map[string]interface{}, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
		c.Abort()
		return nil, false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
		c.Abort()
		return nil, false
	}
	return body, true
}
