package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/netsentinel/internal/config"
	"github.com/thereayou/netsentinel/internal/database"
	"github.com/thereayou/netsentinel/internal/handlers"
	"github.com/thereayou/netsentinel/internal/middleware"
	"github.com/thereayou/netsentinel/internal/prediction"
	"github.com/thereayou/netsentinel/internal/services"
	"github.com/thereayou/netsentinel/internal/websocket"
	"github.com/thereayou/netsentinel/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Config     *config.Config
	Router     *gin.Engine
	HTTP       *http.Server
	DB         *database.Database
	Redis      *redis.Client
	Hub        *websocket.Hub
	Notifier   *websocket.Notifier
	JWTManager *auth.JWTManager
}

// NewServer собирает зависимости. Блокируется, пока база недоступна.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	setupLogging(cfg)

	dbConn := &database.Database{}
	if err := dbConn.Connect(ctx, cfg.DatabaseURL, cfg.DBRetryInterval); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis connect failed: %w", err)
		}
		logrus.Info("Redis connected, realtime events fan out across instances")
	}

	hub := websocket.NewHub()
	notifier := websocket.NewNotifier(hub, rdb, websocket.DefaultChannel)

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.LoginTokenTTL)
	authService, err := services.NewAuthService(dbConn, jwtMgr, cfg.RegisterTokenTTL, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	predictor := prediction.NewClient(cfg.PredictionServiceURL, cfg.PredictionTimeout)
	uploadService := services.NewUploadService(dbConn, predictor, notifier, cfg.UploadDir)
	predictionsService := services.NewPredictionsService(predictor, notifier)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	APIEndpoints(router, Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		User:        handlers.NewUserHandler(authService),
		Upload:      handlers.NewUploadHandler(uploadService),
		Predictions: handlers.NewPredictionsHandler(predictionsService),
		WebSocket:   handlers.NewWebSocketHandler(hub, handlers.OriginChecker(cfg.CORSAllowedOrigins)),
	})

	return &Server{
		Config: cfg,
		Router: router,
		HTTP: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           withCORS(router, cfg.CORSAllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		},
		DB:         dbConn,
		Redis:      rdb,
		Hub:        hub,
		Notifier:   notifier,
		JWTManager: jwtMgr,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливается
func (s *Server) Run(ctx context.Context) error {
	bgCtx, stopBackground := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Hub.Run(bgCtx)
	}()
	go func() {
		defer wg.Done()
		s.Notifier.Run(bgCtx)
	}()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", s.HTTP.Addr).Info("Server starting")
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.HTTP.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP shutdown failed")
	}

	stopBackground()
	wg.Wait()
	s.close()

	logrus.Info("Server stopped")
	return runErr
}

func (s *Server) close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logrus.WithError(err).Warn("Redis close failed")
		}
	}
	if err := s.DB.Close(); err != nil {
		logrus.WithError(err).Warn("Database close failed")
	}
}
