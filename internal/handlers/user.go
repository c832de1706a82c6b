package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/netsentinel/internal/handlers/dto"
	"github.com/thereayou/netsentinel/internal/services"
)

type UserHandler struct {
	auth *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{auth: authService}
}

// GetUserData возвращает публичный профиль пользователя по username
func (h *UserHandler) GetUserData(c *gin.Context) {
	user, err := h.auth.UserProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		HandleServiceError(c, err, respondText)
		return
	}

	c.JSON(http.StatusOK, dto.UserDataResponse{
		Username: user.Username,
		Email:    user.Email,
		JoinDate: user.CreatedAt,
	})
}
