package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/netsentinel/internal/services"
)

const serverErrorMessage = "Server error"

// responder пишет тело ошибки в формате конкретного endpoint
type responder func(c *gin.Context, status int, msg string)

// Тексты ошибок, которые можно отдавать клиенту
var clientMessages = []struct {
	err error
	msg string
}{
	{services.ErrInvalidEmail, "Invalid email format"},
	{services.ErrMissingFields, "Username, email and password are required"},
	{services.ErrUserExists, "Email or username already exists"},
	{services.ErrInvalidCredentials, "Invalid credentials"},
	{services.ErrMissingToken, "No token provided"},
	{services.ErrTokenExpired, "Token expired"},
	{services.ErrInvalidToken, "Invalid token"},
	{services.ErrUserNotFound, "User not found"},
	{services.ErrProfileNotFound, "User not found"},
	{services.ErrNoFile, "No file received"},
	{services.ErrUnsupportedFile, "Only CSV files are accepted"},
}

// HandleServiceError выбирает статус по виду ошибки и отдаёт ответ через render.
// Детали серверных ошибок только логируются.
func HandleServiceError(c *gin.Context, err error, render responder) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		}).Error("Request failed")
	}
	render(c, status, clientMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func clientMessage(err error) string {
	for _, m := range clientMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return serverErrorMessage
}

// respondMsg отвечает в формате auth endpoints: {msg} для 4xx, текст для 5xx
func respondMsg(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		c.String(status, serverErrorMessage)
		return
	}
	c.JSON(status, gin.H{"msg": msg})
}

func respondText(c *gin.Context, status int, msg string) {
	c.String(status, msg)
}
