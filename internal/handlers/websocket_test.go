package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/netsentinel/internal/handlers"
	"github.com/thereayou/netsentinel/internal/websocket"
)

func TestOriginChecker(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"listed origin", []string{"http://dashboard.example"}, "http://dashboard.example", true},
		{"case insensitive", []string{"http://dashboard.example"}, "HTTP://Dashboard.Example", true},
		{"foreign origin", []string{"http://dashboard.example"}, "http://evil.example", false},
		{"missing origin", []string{"http://dashboard.example"}, "", false},
		{"empty list", nil, "http://dashboard.example", false},
		{"wildcard", []string{"*"}, "http://anything.example", true},
		{"wildcard without origin", []string{"*"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, handlers.OriginChecker(tt.allowed)(req))
		})
	}
}

func TestWebSocketHandler_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	hub := websocket.NewHub()
	go hub.Run(ctx)

	h := handlers.NewWebSocketHandler(hub, handlers.OriginChecker([]string{"http://dashboard.example"}))
	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := gorilla.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := gorilla.DefaultDialer.Dial(url, http.Header{"Origin": {"http://dashboard.example"}})
	require.NoError(t, err)
	_ = conn.Close()
}
