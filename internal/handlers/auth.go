package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/netsentinel/internal/handlers/dto"
	"github.com/thereayou/netsentinel/internal/services"
	"github.com/thereayou/netsentinel/pkg/auth"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Username, email and password are required"})
		return
	}

	token, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err, respondMsg)
		return
	}

	c.JSON(http.StatusOK, dto.RegisterResponse{Token: token})
}

// Login принимает email или username в поле identifier
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid credentials"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		HandleServiceError(c, err, respondMsg)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: res.Token, Username: res.Username})
}

// VerifyToken берёт токен из тела, а если его нет, из Authorization header
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req dto.VerifyTokenRequest
	// пустое или битое тело равносильно отсутствию токена
	_ = c.ShouldBindJSON(&req)
	if req.Token == "" {
		if token, err := auth.ExtractTokenFromHeader(c.Request); err == nil {
			req.Token = token
		}
	}

	res, err := h.auth.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		HandleServiceError(c, err, func(c *gin.Context, status int, msg string) {
			c.JSON(status, dto.VerifyTokenResponse{IsValid: false, Error: msg})
		})
		return
	}

	c.JSON(http.StatusOK, dto.VerifyTokenResponse{IsValid: res.Valid, Username: res.Username})
}
