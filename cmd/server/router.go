package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thereayou/netsentinel/internal/handlers"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Upload      *handlers.UploadHandler
	Predictions *handlers.PredictionsHandler
	WebSocket   *handlers.WebSocketHandler
}

// APIEndpoints. Пути совпадают с теми, что ожидает фронтенд дашборда.
func APIEndpoints(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth endpoints
	auth := r.Group("/Auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}
	r.POST("/verifyToken", h.Auth.VerifyToken)
	r.GET("/getUserData/:username", h.User.GetUserData)

	r.POST("/upload/upload", h.Upload.Upload)

	api := r.Group("/api")
	{
		api.GET("/files", h.Upload.ListFiles)
		api.GET("/get-predictions", h.Predictions.GetPredictions)
	}

	r.GET("/ws", h.WebSocket.HandleWebSocket)
}

// withCORS оборачивает весь gin engine, preflight не доходит до роутинга
func withCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})(next)
}
