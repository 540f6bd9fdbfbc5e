package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/JuanTorresCortes/auth-server/internal/pkg/errors"
	"github.com/JuanTorresCortes/auth-server/internal/pkg/response"
	"github.com/JuanTorresCortes/auth-server/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == appErr.ErrUnauthorized {
			response.Error(c, http.StatusUnauthorized, "User or Password does not match", nil)
			return
		}
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

func (h *AuthHandler) Validate(c *gin.Context) {
	email, err := h.auth.Validate(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"email": email})
}
