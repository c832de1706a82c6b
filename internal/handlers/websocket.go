package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	ws "github.com/thereayou/netsentinel/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, checkOrigin func(r *http.Request) bool) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// OriginChecker разрешает upgrade только для origin из списка CORS.
// "*" разрешает любой origin, запрос без Origin при этом отклоняется.
func OriginChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		for _, o := range allowed {
			if o == "*" {
				return true
			}
			if origin != "" && strings.EqualFold(o, origin) {
				return true
			}
		}
		logrus.WithField("origin", origin).Warn("WebSocket connection rejected from unauthorized origin")
		return false
	}
}

// HandleWebSocket подписывает соединение на все события
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Debug("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn)
	if err := h.hub.Register(client); err != nil {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
