package handlers

import (
	"net/http"

	"github.com/OldStager01/resource-sentinel/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler authenticates against a single configured admin account.
type AuthHandler struct {
	authService  *auth.Service
	username     string
	passwordHash string
}

func NewAuthHandler(authService *auth.Service, username, passwordHash string) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		username:     username,
		passwordHash: passwordHash,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	Username  string `json:"username"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Username != h.username || !auth.CheckPassword(req.Password, h.passwordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	expiresIn := int(h.authService.TokenDuration().Seconds())

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("auth_token", token, expiresIn, "/", "", true, true)

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Username:  req.Username,
	})
}
